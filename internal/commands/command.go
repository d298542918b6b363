package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeToggle  Type = "toggle"
	TypeDelete  Type = "delete"
	TypeRefresh Type = "refresh"
	TypeInit    Type = "init"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title       string
	Description string
}

// TargetArgs names one task by id.
type TargetArgs struct {
	ID int64
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Toggle *TargetArgs
	Delete *TargetArgs
}

// Parse reads one palette line. The leading slash is optional.
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	head, rest, _ := strings.Cut(raw, " ")
	head = strings.ToLower(head)
	rest = strings.TrimSpace(rest)

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, rest)
	case TypeToggle:
		args, err := parseTarget(head, rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeToggle, Raw: input, Toggle: &args}, nil
	case TypeDelete:
		args, err := parseTarget(head, rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeDelete, Raw: input, Delete: &args}, nil
	case TypeRefresh, TypeInit:
		if rest != "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd splits "title | description" on the first pipe.
func parseAdd(raw string, rest string) (Command, error) {
	title, desc, _ := strings.Cut(rest, "|")
	title = strings.TrimSpace(title)
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Description: strings.TrimSpace(desc)}}, nil
}

func parseTarget(head, rest string) (TargetArgs, error) {
	fields := strings.Fields(rest)
	if len(fields) != 1 {
		return TargetArgs{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires one task id", head)}
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(fields[0], "#"), 10, 64)
	if err != nil || id <= 0 {
		return TargetArgs{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task id: %s", fields[0])}
	}
	return TargetArgs{ID: id}, nil
}
