package bot

type userState struct {
	Step     string
	FullName string // registration draft
}

const (
	stateRegName   = "reg_name"
	stateRegBranch = "reg_branch" // waiting for branch callback
	stateNewName   = "settings_new_name"
)
