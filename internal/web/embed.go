package web

import "embed"

// CronTemplate is the name of the default cron page template
const CronTemplate = "templates/cron.html"

// Templates contains the default templates
//
//go:embed templates
var Templates embed.FS
