package service

import "errors"

// Caller-input faults are surfaced verbatim; handlers map them onto HTTP
// statuses. ErrStorageUnavailable marks a failed atomic write that rolled
// back fully and is safe to retry wholesale.
var (
	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEvaluatorNotFound indicates the authenticated evaluator could not be resolved.
	ErrEvaluatorNotFound = errors.New("evaluator not found")
	// ErrTargetNotFound indicates the evaluated student does not exist.
	ErrTargetNotFound = errors.New("target student not found")
	// ErrActivityNotFound indicates the referenced activity does not exist.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrRubricNotFound indicates the referenced rubric does not exist.
	ErrRubricNotFound = errors.New("rubric not found")
	// ErrGroupNotFound indicates the referenced group does not exist.
	ErrGroupNotFound = errors.New("group not found")

	// ErrTargetRequired indicates the submission did not name a target student.
	ErrTargetRequired = errors.New("target student id is required")
	// ErrActivityRequired indicates the submission did not name an activity.
	ErrActivityRequired = errors.New("activity id is required")
	// ErrInvalidDueDate indicates an unparseable activity due date.
	ErrInvalidDueDate = errors.New("invalid due date format, expected YYYY-MM-DD or RFC 3339")

	// ErrAlreadyEvaluated indicates a duplicate (evaluator, target, activity) submission.
	ErrAlreadyEvaluated = errors.New("you have already evaluated this student for this activity")

	// ErrStorageUnavailable indicates the storage layer failed mid-write; the
	// transaction rolled back and the request may be retried.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrSeedDisabled indicates database seeding is turned off in configuration.
	ErrSeedDisabled = errors.New("seeding is disabled")
	// ErrSeedUnauthorized indicates a seed request carried a wrong or missing token.
	ErrSeedUnauthorized = errors.New("invalid seed token")
)
