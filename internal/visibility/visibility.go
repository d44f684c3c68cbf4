// Package visibility holds the pure authorization predicates for reading
// posts and stories. The rules compose a viewer, a content owner and the
// follow graph; callers resolve the follower edge and pass it in.
package visibility

import (
	"github.com/gramline/gramline/internal/model"
)

// CanView is the general read predicate used to filter collections:
// owners always see their own content, open profiles are readable by any
// authenticated viewer, private profiles require a follower edge
// (viewer -> owner).
func CanView(viewerID string, owner *model.User, isFollower bool) bool {
	if owner.ID == viewerID {
		return true
	}
	if owner.IsOpen() {
		return true
	}
	return isFollower
}

// OpenDetailAllowed guards the .../{id}/open detail routes. It recomputes
// the profile status strictly and gives the owner no special treatment:
// an owner reading their own private content through the open route is
// refused. Kept separate from PrivateDetailAllowed on purpose; the two
// routes behave differently and unifying them would change semantics.
func OpenDetailAllowed(owner *model.User) bool {
	return owner.IsOpen()
}

// PrivateDetailAllowed guards the .../{id}/private detail routes. The
// viewer must pass the general read predicate, and the route additionally
// accepts only private owners or the owner reading their own content.
func PrivateDetailAllowed(viewerID string, owner *model.User, isFollower bool) bool {
	if !CanView(viewerID, owner, isFollower) {
		return false
	}
	return owner.IsPrivate() || owner.ID == viewerID
}
