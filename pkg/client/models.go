package client

// Credentials identify a user for registration and login. They are created
// by the caller and never stored by the client.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User is the record returned by a successful registration.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Token is the bearer credential returned by login. The client performs no
// refresh or expiry handling; callers re-acquire a token per session.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Option is one selectable answer of a poll.
type Option struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// Poll is a question with its ordered options.
type Poll struct {
	ID        int      `json:"id"`
	Question  string   `json:"question"`
	CreatedAt string   `json:"created_at"`
	OwnerID   int      `json:"owner_id"`
	Options   []Option `json:"options"`
}

// Vote is the confirmation record returned after casting a vote.
type Vote struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	OptionID  int    `json:"option_id"`
	CreatedAt string `json:"created_at"`
}

// OptionResult is the aggregate tally for a single option.
type OptionResult struct {
	OptionID  int    `json:"option_id"`
	Text      string `json:"text"`
	VoteCount int    `json:"vote_count"`
}

// PollResults aggregates vote counts per option for one poll.
type PollResults struct {
	PollID   int            `json:"poll_id"`
	Question string         `json:"question"`
	Results  []OptionResult `json:"results"`
}
