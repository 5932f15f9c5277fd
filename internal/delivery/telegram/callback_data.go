package telegram

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/aliskhannn/flipquiz-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionCourse     = "course"
	actionDifficulty = "diff"
	actionFlip       = "flip"
	actionAnswer     = "ans"
	actionNext       = "next"
	actionAgain      = "again"
	actionMenu       = "menu"
)

var errMalformedCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// gameRef points at one round of one game.
type gameRef struct {
	Token string
	Round int
}

// gameRef parses the token and round carried by flip, ans and next callbacks.
func (cd callbackData) gameRef() (gameRef, error) {
	if len(cd.Params) < 2 {
		return gameRef{}, errMalformedCallback
	}
	round, err := strconv.Atoi(cd.Params[1])
	if err != nil || round < 0 {
		return gameRef{}, errMalformedCallback
	}
	return gameRef{Token: cd.Params[0], Round: round}, nil
}

// option parses the option index of an ans callback.
func (cd callbackData) option() (int, error) {
	if len(cd.Params) != 3 {
		return 0, errMalformedCallback
	}
	i, err := strconv.Atoi(cd.Params[2])
	if err != nil || i < 0 {
		return 0, errMalformedCallback
	}
	return i, nil
}

// courseIndex parses the course index of course and diff callbacks.
func (cd callbackData) courseIndex() (int, error) {
	if len(cd.Params) == 0 {
		return 0, errMalformedCallback
	}
	i, err := strconv.Atoi(cd.Params[0])
	if err != nil || i < 0 {
		return 0, errMalformedCallback
	}
	return i, nil
}

// difficulty parses the difficulty of a diff callback.
func (cd callbackData) difficulty() (entities.Difficulty, error) {
	if len(cd.Params) != 2 {
		return "", errMalformedCallback
	}
	return entities.ParseDifficulty(cd.Params[1])
}

// buildCourseCallback builds callback data for picking a course by its index
// in the sorted course list. Course names can exceed the callback size limit.
func buildCourseCallback(courseIdx int) string {
	return callbackData{
		Action: actionCourse,
		Params: []string{strconv.Itoa(courseIdx)},
	}.encode()
}

// buildDifficultyCallback builds callback data for starting a game.
func buildDifficultyCallback(courseIdx int, d entities.Difficulty) string {
	return callbackData{
		Action: actionDifficulty,
		Params: []string{strconv.Itoa(courseIdx), d.String()},
	}.encode()
}

// buildFlipCallback builds callback data for revealing the question of a round.
func buildFlipCallback(token uuid.UUID, round int) string {
	return callbackData{
		Action: actionFlip,
		Params: []string{token.String(), strconv.Itoa(round)},
	}.encode()
}

// buildAnswerCallback builds callback data for choosing an option.
func buildAnswerCallback(token uuid.UUID, round, option int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{token.String(), strconv.Itoa(round), strconv.Itoa(option)},
	}.encode()
}

// buildNextCallback builds callback data for moving past a finished round.
func buildNextCallback(token uuid.UUID, round int) string {
	return callbackData{
		Action: actionNext,
		Params: []string{token.String(), strconv.Itoa(round)},
	}.encode()
}

// buildAgainCallback builds callback data for replaying a finished game.
func buildAgainCallback(token uuid.UUID) string {
	return callbackData{
		Action: actionAgain,
		Params: []string{token.String()},
	}.encode()
}

// buildMenuCallback builds callback data for opening the course menu.
func buildMenuCallback() string {
	return actionMenu
}
