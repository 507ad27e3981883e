package main

import (
	"fmt"

	"github.com/aviator-co/readmestats/internal/config"
	"github.com/aviator-co/readmestats/internal/gh"
	"github.com/aviator-co/readmestats/internal/utils/errutils"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

const missingConfiguration = `# ERROR: Missing configuration

` + "`readmestats`" + ` needs a GitHub API token and the login of the user to
compute statistics for. Either export them:

    export ACCESS_TOKEN=ghp_...
    export USER_NAME=octocat

or set ` + "`github.token`" + ` and ` + "`github.user`" + ` in
` + "`$XDG_CONFIG_HOME/readmestats/config.yaml`" + `.
`

const rateLimited = `# ERROR: GitHub API rate limit exceeded

GitHub stopped answering queries because the token ran out of API quota.
Nothing was written. Wait for the limit to reset (usually within an hour)
and run ` + "`readmestats`" + ` again.
`

const unauthorized = `# ERROR: GitHub rejected the token

The API answered 401 Unauthorized. Check that the token in ` + "`ACCESS_TOKEN`" + `
hasn't expired and that it has the ` + "`read:user`" + ` and ` + "`repo`" + ` scopes.
`

func renderError(err error) string {
	var markdownText string
	if cerr, ok := errutils.As[*config.ConfigurationError](err); ok {
		if cerr.Key == "github.token" || cerr.Key == "github.user" {
			markdownText = missingConfiguration
		}
	} else if gh.IsRateLimited(err) {
		markdownText = rateLimited
	} else if gh.IsHTTPUnauthorized(err) {
		markdownText = unauthorized
	}

	msg := fmt.Sprintf("error: %s\n", err)
	if markdownText == "" || !stderrIsTerminal() {
		return msg
	}
	var style string
	if lipgloss.HasDarkBackground() {
		style = styles.DarkStyle
	} else {
		style = styles.LightStyle
	}
	if out, rerr := glamour.Render(markdownText, style); rerr == nil {
		return out + msg
	}
	// If there's an error, fallback to the plaintext message.
	return msg
}
