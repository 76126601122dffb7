package refine

import "smartcommit/cli/internal/prompt"

// DefaultHistoryTurns is how many trailing turns a revision prompt embeds.
const DefaultHistoryTurns = 10

// Turn is one conversation entry.
type Turn = prompt.Turn

// Conversation is the append-only transcript of one session. It only feeds
// later prompts and is never persisted.
type Conversation struct {
	turns []Turn
}

// NewConversation seeds a conversation with the generation prompt and the
// model's first reply.
func NewConversation(systemPrompt, firstReply string) *Conversation {
	c := &Conversation{}
	c.Append(prompt.RoleSystem, systemPrompt)
	c.Append(prompt.RoleAssistant, firstReply)
	return c
}

// Append adds a turn.
func (c *Conversation) Append(role prompt.Role, content string) {
	c.turns = append(c.turns, Turn{Role: role, Content: content})
}

// Len returns the number of turns.
func (c *Conversation) Len() int {
	if c == nil {
		return 0
	}
	return len(c.turns)
}

// Turns returns a copy of every turn.
func (c *Conversation) Turns() []Turn {
	if c == nil {
		return nil
	}
	return append([]Turn(nil), c.turns...)
}

// Window returns a copy of the seeding system prompt followed by the last n
// turns after it (all of them when n <= 0 or fewer remain).
func (c *Conversation) Window(n int) []Turn {
	all := c.Turns()
	if len(all) == 0 || all[0].Role != prompt.RoleSystem {
		if n <= 0 || n >= len(all) {
			return all
		}
		return all[len(all)-n:]
	}
	rest := all[1:]
	if n > 0 && n < len(rest) {
		rest = rest[len(rest)-n:]
	}
	return append(all[:1:1], rest...)
}
