package repository

import "errors"

// 対象が見つからない（usecaseで404にする）
var ErrNotFound = errors.New("not found")
