package static

import _ "embed"

// IntegrationMd contains the embedded integration notes for scoreboard
// operators.
//
//go:embed integration.md
var IntegrationMd string
