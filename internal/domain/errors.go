package domain

import "errors"

var (
	// ErrNoSession is returned when no board has been loaded yet.
	ErrNoSession = errors.New("no game session loaded")
	// ErrBoardNotFound indicates the board content could not be loaded.
	ErrBoardNotFound = errors.New("board not found")
	// ErrNoActiveQuestion is the benign, retryable rejection for claims that
	// arrive while no slot is open (or after another claim won it).
	ErrNoActiveQuestion = errors.New("no question is currently active")
	// ErrQuestionActive is returned to the host when a question is presented
	// while another one is still open.
	ErrQuestionActive = errors.New("a question is already active")
	// ErrEmptyTeamName rejects claims without a team selection.
	ErrEmptyTeamName = errors.New("please select a team")
	// ErrEmptyPlayerName rejects claims without a player name.
	ErrEmptyPlayerName = errors.New("please set a player name first")
	// ErrUnknownTeam rejects claims naming a team that was never created.
	ErrUnknownTeam = errors.New("unknown team")
	// ErrNotYourTurn rejects claims from a team other than the one the open
	// slot was presented to.
	ErrNotYourTurn = errors.New("this team is not at the table right now")
	// ErrAnswerOutOfRange rejects claims whose answer index does not name one
	// of the open question's answers.
	ErrAnswerOutOfRange = errors.New("that answer does not exist")
	// ErrTeamExists rejects creating a second team with the same
	// (case-insensitive) name.
	ErrTeamExists = errors.New("a team with this name already exists")
	// ErrCategoryNotFound indicates a host request named an unknown category.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrQuestionNotFound indicates a host request named a point value the
	// category does not have.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrQuestionConsumed indicates the named cell was already played.
	ErrQuestionConsumed = errors.New("question has already been played")
	// ErrNoTeams indicates an operation that needs a current team ran before
	// any team was created.
	ErrNoTeams = errors.New("no teams have been created")
)
