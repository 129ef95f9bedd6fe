package catalog

// staticItems returns the demo content of the non-client categories.
func staticItems() map[Category][]Item {
	return map[Category][]Item{
		CategoryTasks: {
			{
				ID:          "task-1",
				Title:       "Review credit report for Sarah Johnson",
				Description: "Due Jan 25 - In Progress",
				Href:        "/tasks/task-1",
				Keywords:    []string{"credit report", "Sarah Johnson", "analysis"},
			},
			{
				ID:          "task-2",
				Title:       "Prepare dispute letters for Michael Brown",
				Description: "Due Jan 28 - To Do",
				Href:        "/tasks/task-2",
				Keywords:    []string{"letters", "Michael Brown"},
			},
			{
				ID:          "task-3",
				Title:       "Follow up with Jennifer Davis",
				Description: "Due Jan 24 - Urgent",
				Href:        "/tasks/task-3",
				Keywords:    []string{"follow up", "Jennifer Davis"},
			},
			{
				ID:          "task-4",
				Title:       "Send welcome package to David Wilson",
				Description: "Completed - Onboarding",
				Href:        "/tasks/task-4",
				Keywords:    []string{"welcome", "David Wilson"},
			},
		},
		CategoryDisputes: {
			{
				ID:          "1",
				Title:       "Dispute late payment - Capital One",
				Description: "Client: Sarah Johnson - Experian",
				Href:        "/disputes/1",
				Keywords:    []string{"late payment", "capital one", "experian", "sarah"},
			},
			{
				ID:          "2",
				Title:       "Remove collection account - ABC Collections",
				Description: "Client: Michael Brown - Equifax",
				Href:        "/disputes/2",
				Keywords:    []string{"collection", "abc", "equifax", "michael"},
			},
			{
				ID:          "3",
				Title:       "Challenge account balance - Chase Bank",
				Description: "Client: Jennifer Davis - TransUnion",
				Href:        "/disputes/3",
				Keywords:    []string{"account balance", "chase", "transunion", "jennifer"},
			},
		},
		CategoryLetters: {
			{
				ID:          "101",
				Title:       "Dispute Letter - Capital One",
				Description: "PDF - 156 KB",
				Href:        "/letters/101",
				Keywords:    []string{"capital one", "dispute letter"},
			},
			{
				ID:          "102",
				Title:       "Debt Validation Letter - ABC Collections",
				Description: "DOCX - 98 KB",
				Href:        "/letters/102",
				Keywords:    []string{"debt", "validation", "abc"},
			},
		},
		CategoryTemplates: {
			{
				ID:          "template-1",
				Title:       "Square 1:1 social media marketing",
				Description: "Natural-light food photography",
				Href:        "/templates/template-1",
				Keywords:    []string{"social media", "food", "marketing"},
			},
			{
				ID:          "template-2",
				Title:       "AI social media hero image",
				Description: "Catalog-ready treat showcase",
				Href:        "/templates/template-2",
				Keywords:    []string{"ai", "hero", "treat"},
			},
		},
		CategoryUsers: {
			{
				ID:          "user-1",
				Title:       "Monica Reed",
				Description: "Administrator - monica@credkitcrm.com",
				Href:        "/settings/profile",
				Keywords:    []string{"admin", "monica", "reed"},
			},
			{
				ID:          "user-2",
				Title:       "John Agent",
				Description: "Credit Specialist - john@credkitcrm.com",
				Href:        "/settings/profile",
				Keywords:    []string{"agent", "john"},
			},
		},
	}
}
