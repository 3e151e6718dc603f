package sqlparser

import (
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Command describes a client-side command that may appear on a control
// line, e.g. `@set x = 1`.
type Command struct {
	ID          string
	Description string
}

// CommandRegistry holds the command ids a control line may carry.
// Control lines with other ids are treated as SQL text.
type CommandRegistry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// DefaultCommands are registered by NewCommandRegistry.
var DefaultCommands = []Command{
	{ID: "set", Description: "assign a script variable: @set name = value"},
	{ID: "include", Description: "run another script file: @include path"},
	{ID: "echo", Description: "print text: @echo message"},
	{ID: "export", Description: "export the next query result: @export {options}"},
	{ID: "delimiter", Description: "change the statement delimiter: DELIMITER $$"},
}

func NewCommandRegistry(commands ...Command) *CommandRegistry {
	r := &CommandRegistry{commands: map[string]Command{}}
	for _, c := range DefaultCommands {
		r.Register(c)
	}
	for _, c := range commands {
		r.Register(c)
	}
	return r
}

// Register adds c, replacing any command with the same id. Ids are case
// insensitive.
func (r *CommandRegistry) Register(c Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = strings.ToLower(c.ID)
	r.commands[c.ID] = c
}

func (r *CommandRegistry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.commands[strings.ToLower(id)]
	return ok
}

func (r *CommandRegistry) Get(id string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.commands[strings.ToLower(id)]
	return c, ok
}

// IDs lists the registered ids in sorted order.
func (r *CommandRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.commands))
	for id := range r.commands {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Suggest returns the registered id closest to an unknown one, or "".
func (r *CommandRegistry) Suggest(id string) string {
	if id == "" {
		return ""
	}
	ranks := fuzzy.RankFindFold(id, r.IDs())
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
