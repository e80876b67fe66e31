package io

import (
	"errors"

	"github.com/ezrec/mips32/translate"
)

var f = translate.From

var (
	// Console errors
	ErrInputNumber = errors.New(f("input is not a number"))
	ErrNoInput     = errors.New(f("no input attached"))
	ErrNoOutput    = errors.New(f("no output attached"))
)
