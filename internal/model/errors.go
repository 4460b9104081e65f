package model

import "errors"

// ErrDictionaryNotLoaded is returned by storage when no dictionary has
// been saved yet
var ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
