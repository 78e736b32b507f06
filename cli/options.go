package cli

// Options holds flags shared by every command
type Options struct {
	Config   string `short:"c" long:"config" description:"yaml config file"`
	BaseURL  string `short:"u" long:"url" description:"api base url, overrides the environment default"`
	Store    string `short:"s" long:"store" description:"credential store driver" choice:"memory" choice:"file" choice:"redis"`
	StoreURL string `long:"store-url" description:"credential file location for the file store"`
	Verbose  bool   `short:"v" long:"verbose" description:"debug logging"`
}

type Login struct {
	Email    string `short:"e" long:"email" description:"account email" required:"true"`
	Password string `short:"p" long:"password" description:"account password" required:"true"`
	app      *App
}

type Logout struct {
	app *App
}

type Register struct {
	Email    string `short:"e" long:"email" description:"account email" required:"true"`
	Password string `short:"p" long:"password" description:"account password" required:"true"`
	Username string `short:"n" long:"username" description:"display name" required:"true"`
	Gender   bool   `short:"g" long:"gender" description:"gender flag sent to the api"`
	app      *App
}

type Verify struct {
	Email  string `short:"e" long:"email" description:"account email" required:"true"`
	OTP    string `short:"o" long:"otp" description:"one time code from the verification email"`
	Resend bool   `long:"resend" description:"send a new code instead of verifying"`
	app    *App
}

type Me struct {
	app *App
}

type Page struct {
	PageNumber int    `long:"page" description:"page number"`
	PageSize   int    `long:"size" description:"page size"`
	Search     string `short:"q" long:"search" description:"search term"`
}

type Groups struct {
	Page
	SortBy string `long:"sort" description:"sort field"`
	Desc   bool   `long:"desc" description:"sort descending"`
	app    *App
}

type Group struct {
	Args struct {
		ID string `positional-arg-name:"id" description:"group id" required:"yes"`
	} `positional-args:"yes"`
	app *App
}

type Friends struct {
	Page
	app *App
}

type Requests struct {
	Page
	Sent bool `long:"sent" description:"list sent instead of received requests"`
	app  *App
}

type Status struct {
	app *App
}
