// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package storefrontui

// Storefront content that the API does not serve. The dashboard's
// domain and database listings and the plan summary are placeholders
// until the hosting backend exposes them.

// Plan is one hosting offer on the pricing page.
type Plan struct {
	Name     string
	Price    string
	Period   string
	Features []string
}

var plans = []Plan{
	{
		Name:     "PLESK 1",
		Price:    "$10",
		Period:   "30 days",
		Features: []string{"3x Domain Slots", "No Database", "NodeJS Enabled", "30 Days Duration"},
	},
	{
		Name:     "PLESK 2",
		Price:    "$15",
		Period:   "30 days",
		Features: []string{"4x Domain Slots", "4x Databases", "NodeJS Enabled", "30 Days Duration"},
	},
	{
		Name:     "PLESK 3",
		Price:    "$25",
		Period:   "30 days",
		Features: []string{"7x Domain Slots", "7x Databases", "NodeJS Enabled", "30 Days Duration"},
	},
}

type domainEntry struct {
	Name      string
	Status    string
	ExpiresAt string
}

type databaseEntry struct {
	Name   string
	Size   string
	Status string
}

type planSummary struct {
	Name          string
	NodeJSEnabled bool
	ExpiresAt     string
}

var (
	placeholderDomains = []domainEntry{
		{Name: "example.com", Status: "active", ExpiresAt: "2025-12-31"},
		{Name: "mysite.net", Status: "active", ExpiresAt: "2025-11-15"},
	}
	placeholderDatabases = []databaseEntry{
		{Name: "db_main", Size: "256 MB", Status: "active"},
		{Name: "db_users", Size: "128 MB", Status: "active"},
	}
	placeholderPlan = planSummary{Name: "Nothing", NodeJSEnabled: true, ExpiresAt: "2025-06-15"}
)

const (
	telegramContact = "https://t.me/netrunnerhost"
	supportContact  = "https://t.me/netrunnersupport"
)

const tagline = "Unlock security and performance with managed hosting: your website, safeguarded and always online."

var highlights = []string{"99.9% Uptime", "Instant Setup", "DDoS Protection"}

const termsOfService = `## Terms of Service

**Important notice.** Please read these terms carefully. Violating them results in immediate termination of your services.

- Complaints received about a hosted service are reviewed and may lead to blocking it.
- Content that is illegal in the hosting jurisdiction is prohibited.
- Accounts are identified only by their access code. Keep it private; anyone holding it can manage your services.

Questions? Contact support on Telegram: ` + supportContact

const getCodeIntro = "Generate your unique and permanent code below. It is the only credential for your account."

const getCodeWarning = "IMPORTANT: Do not share this code with anyone, they will be able to access your account. Once generated, use it to log in to your dashboard."
