package md2man_test

import (
	"testing"

	"github.com/aviator-co/readmestats/docs/internal/md2man"
	"github.com/stretchr/testify/assert"
)

func TestRenderToRoff(t *testing.T) {
	out := string(md2man.RenderToRoff([]byte(`# readmestats 1

## NAME

readmestats - update a *profile* with **stats**

## OPTIONS

* `+"`--dry-run`"+`: print values
* .hidden
`), 1, "v1.0.0", "readmestats", "readmestats Manual"))

	assert.Contains(t, out, `.TH "READMESTATS" "1" `)
	assert.Contains(t, out, `"readmestats v1.0.0" "readmestats Manual"`)
	assert.Contains(t, out, ".SH \"NAME\"\n")
	assert.Contains(t, out, `readmestats \- update a \fIprofile\fP with \fBstats\fP`)
	assert.Contains(t, out, ".IP \\(bu 2\n")
	assert.Contains(t, out, `\fB\-\-dry\-run\fP: print values`)
	assert.Contains(t, out, `\&.hidden`)
}
