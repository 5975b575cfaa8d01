package domain

import "errors"

var (
	// ErrQuestionnaireNotFound indicates the questionnaire content could not be loaded.
	ErrQuestionnaireNotFound = errors.New("questionnaire not found")
	// ErrInvalidQuestionnaire is returned when a questionnaire fails validation at load time.
	ErrInvalidQuestionnaire = errors.New("invalid questionnaire")
	// ErrQuestionNotFound indicates a requested question ID is unknown.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrInvalidAnswers is returned when submitted answers are not a list of {questionId, optionId} pairs.
	ErrInvalidAnswers = errors.New("invalid answers")
	// ErrResultNotFound is returned when no saved result exists for a session.
	ErrResultNotFound = errors.New("result not found")
)
