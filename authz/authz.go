// Package authz is the single source of truth for album access decisions.
// Handlers resolve the target resource first (a lookup miss is reported as
// not-found before any authorization question is asked), then call Authorize.
package authz

import (
	"albumapi/apperr"
	"albumapi/models"
)

// Caller is the verified identity attached to a request. A nil Caller means
// the request carried no valid session credential.
type Caller struct {
	ID    uint64
	Email string
	Role  string
}

type Op int

const (
	OpAlbumCreate Op = iota
	OpAlbumRead
	OpAlbumUpdate
	OpAlbumDelete
	OpAlbumShare
	OpImageUpload
	OpImageDelete
	OpImageFavourite
	OpImageList
	OpCommentAdd
)

// Authorize decides whether caller may perform op on album. It is a pure
// decision - it never mutates state. Ownership is compared by user id, never
// by email, so an owner's email change cannot revoke ownership.
func Authorize(caller *Caller, op Op, album *models.Album) error {
	switch op {
	case OpAlbumRead:
		// Album metadata is readable by id without authentication.
		return nil
	case OpAlbumCreate:
		if caller == nil {
			return apperr.ErrUnauthenticated
		}
		return nil
	case OpAlbumUpdate, OpAlbumDelete, OpAlbumShare,
		OpImageUpload, OpImageDelete, OpImageFavourite:
		return requireOwner(caller, album)
	case OpImageList, OpCommentAdd:
		return requireOwnerOrShared(caller, album)
	}
	return apperr.Forbidden("unknown operation")
}

func requireOwner(caller *Caller, album *models.Album) error {
	if caller == nil {
		return apperr.ErrUnauthenticated
	}
	if caller.ID != album.UserID {
		return apperr.Forbidden("you do not own this album")
	}
	return nil
}

func requireOwnerOrShared(caller *Caller, album *models.Album) error {
	if caller == nil {
		return apperr.ErrUnauthenticated
	}
	if caller.ID == album.UserID || album.SharedWith(caller.Email) {
		return nil
	}
	return apperr.Forbidden("this album is not shared with you")
}
