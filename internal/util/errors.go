package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrUsernameRegistered = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserDisabled       = errors.New("account disabled")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrPartNotFound       = errors.New("part not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrQuestionNotFound   = errors.New("question not found or inactive")
	ErrAnswerNotFound     = errors.New("answer not found")
	ErrCollectionNotFound = errors.New("collection not found or not published")

	ErrAttemptNotFound         = errors.New("attempt not found")
	ErrAttemptCompleted        = errors.New("attempt already completed")
	ErrQuestionNotInCollection = errors.New("question does not belong to the attempt's collection")
	ErrQuestionAlreadyAnswered = errors.New("question already answered in this attempt")
	ErrAnswerNotOfQuestion     = errors.New("selected answer does not belong to the question")
	ErrAttemptIncomplete       = errors.New("attempt has unanswered questions")

	ErrInvalidDifficulty = errors.New("difficulty_level must be between 1 and 4")
	ErrInvalidSlug       = errors.New("slug may contain only latin letters, digits, hyphen and underscore")
)
