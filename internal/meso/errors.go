package meso

import "errors"

var (
	// ErrEmptyOracle indicates the oracle text normalized to zero tokens.
	ErrEmptyOracle = errors.New("meso: oracle has no usable words")

	// ErrEmptySpine indicates the seed text normalized to an empty spine.
	ErrEmptySpine = errors.New("meso: spine has no usable letters")

	// ErrSpineWordExhausted indicates a full cyclic scan of the oracle found
	// no word that can carry the requested spine letter.
	ErrSpineWordExhausted = errors.New("meso: no oracle word fits the spine letter")
)
