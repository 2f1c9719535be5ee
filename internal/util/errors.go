package util

import "errors"

var (
	ErrContentNotFound      = errors.New("content not found")
	ErrCorpusDirMissing     = errors.New("content directory does not exist")
	ErrBlobNotFound         = errors.New("blob not found")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrNotDraft             = errors.New("can only submit draft contributions")
	ErrNotSubmitted         = errors.New("can only review submitted contributions")
	ErrNotApproved          = errors.New("can only publish approved contributions")
	ErrInvalidContribStatus = errors.New("unknown contribution status")
)
