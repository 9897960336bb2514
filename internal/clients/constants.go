package clients

const (
	USER_AGENT = "aspectrank-client/1.0 (+https://github.com/kanithisathvik/aspectrank)"
)
