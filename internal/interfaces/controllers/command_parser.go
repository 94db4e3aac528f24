package controllers

import (
	"strings"

	"github.com/takutakahashi/demoenv-bot/internal/domain/entities"
)

// Command is a parsed slash-command line. Exactly one concrete variant is
// produced per input; unrecognized input parses to HelpCommand instead of
// an error, which keeps the command grammar forgiving.
type Command interface {
	isCommand()
}

// ClaimCommand claims a named environment, optionally for a given duration.
type ClaimCommand struct {
	Environment   string
	DurationToken string
}

// FreeCommand releases a named environment.
type FreeCommand struct {
	Environment string
}

// ListCommand shows active claims; All includes free environments.
type ListCommand struct {
	All bool
}

// HelpCommand is the fall-through for anything unrecognized, including
// claim/free targets that fail catalog validation.
type HelpCommand struct{}

func (ClaimCommand) isCommand() {}
func (FreeCommand) isCommand()  {}
func (ListCommand) isCommand()  {}
func (HelpCommand) isCommand()  {}

// ParseCommand classifies one slash-command line. Patterns are tried in
// fixed priority order (claim, free, list) and the first match wins.
// Keywords and environment names are matched case-insensitively; parsed
// environment names come back in catalog form.
func ParseCommand(text string, catalog *entities.Catalog) Command {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return HelpCommand{}
	}

	switch strings.ToLower(tokens[0]) {
	case "claim":
		if len(tokens) >= 2 && catalog.IsValid(tokens[1]) {
			cmd := ClaimCommand{Environment: catalog.Canonical(tokens[1])}
			if len(tokens) >= 3 {
				cmd.DurationToken = tokens[2]
			}
			return cmd
		}
	case "free":
		if len(tokens) >= 2 && catalog.IsValid(tokens[1]) {
			return FreeCommand{Environment: catalog.Canonical(tokens[1])}
		}
	case "list":
		all := len(tokens) >= 2 && (strings.EqualFold(tokens[1], "all") || strings.EqualFold(tokens[1], "--all"))
		return ListCommand{All: all}
	}
	return HelpCommand{}
}
