// Package action defines the kinds of step small-git announces to the user.
// Each kind is its own type so that a reporter can switch on it and callers
// cannot invent new kinds at runtime.
package action

// Action is one announced step.
type Action interface {
	// Label is the icon and name shown in every announcement.
	Label() string
	// Name is the plain command name.
	Name() string
	isAction()
}

type (
	Commit    struct{}
	Pull      struct{}
	Push      struct{}
	Reset     struct{}
	ForcePush struct{}
	Squash    struct{}
	Abort     struct{}
	Rebase    struct{}
	Fetch     struct{}
	Sync      struct{}
	Stash     struct{}
	Submodule struct{}
	Scoop     struct{}
	Env       struct{}
	Delete    struct{}
	Check     struct{}
)

func (Commit) Label() string    { return "💾 Commit" }
func (Pull) Label() string      { return "⬇️  Pull" }
func (Push) Label() string      { return "⬆️  Push" }
func (Reset) Label() string     { return "🪓 Reset" }
func (ForcePush) Label() string { return "⏫ Force-Push" }
func (Squash) Label() string    { return "🔨 Squash" }
func (Abort) Label() string     { return "🛑 Abort" }
func (Rebase) Label() string    { return "🌳 Rebase" }
func (Fetch) Label() string     { return "🔃 Fetch" }
func (Sync) Label() string      { return "🔄️ Sync" }
func (Stash) Label() string     { return "🗄️  Stash" }
func (Submodule) Label() string { return "📦 Submodule" }
func (Scoop) Label() string     { return "🥄 Scoop" }
func (Env) Label() string       { return "🌏 Env" }
func (Delete) Label() string    { return "🗑️  Delete" }
func (Check) Label() string     { return "🚓 Check" }

func (Commit) Name() string    { return "commit" }
func (Pull) Name() string      { return "pull" }
func (Push) Name() string      { return "push" }
func (Reset) Name() string     { return "reset" }
func (ForcePush) Name() string { return "force-push" }
func (Squash) Name() string    { return "squash" }
func (Abort) Name() string     { return "abort" }
func (Rebase) Name() string    { return "rebase" }
func (Fetch) Name() string     { return "fetch" }
func (Sync) Name() string      { return "sync" }
func (Stash) Name() string     { return "stash" }
func (Submodule) Name() string { return "submod" }
func (Scoop) Name() string     { return "scoop" }
func (Env) Name() string       { return "env" }
func (Delete) Name() string    { return "delete" }
func (Check) Name() string     { return "check" }

func (Commit) isAction()    {}
func (Pull) isAction()      {}
func (Push) isAction()      {}
func (Reset) isAction()     {}
func (ForcePush) isAction() {}
func (Squash) isAction()    {}
func (Abort) isAction()     {}
func (Rebase) isAction()    {}
func (Fetch) isAction()     {}
func (Sync) isAction()      {}
func (Stash) isAction()     {}
func (Submodule) isAction() {}
func (Scoop) isAction()     {}
func (Env) isAction()       {}
func (Delete) isAction()    {}
func (Check) isAction()     {}

// All returns every action in display order.
func All() []Action {
	return []Action{
		Commit{}, Pull{}, Push{}, Reset{}, ForcePush{}, Squash{}, Abort{}, Rebase{},
		Fetch{}, Sync{}, Stash{}, Submodule{}, Scoop{}, Env{}, Delete{}, Check{},
	}
}
