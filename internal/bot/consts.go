package bot

const ctxContext = "context"

const (
	cmdStart   = "/start"
	cmdProfile = "/profile"
	cmdAbout   = "/about"
	cmdReset   = "/reset"
)
