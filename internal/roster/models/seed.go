package models

// SeedClients returns the sample roster shown when nothing has been persisted.
// Each call returns a fresh copy so callers may modify the result.
func SeedClients() []ClientRecord {
	seed := []ClientRecord{
		{
			ID:           "1",
			Name:         "Sarah Johnson",
			Email:        "sarah.j@email.com",
			Phone:        "15550123",
			Stage:        "Active Client",
			Status:       StatusActive,
			Tags:         []string{"VIP", "High Priority"},
			Disputes:     3,
			Tasks:        2,
			Documents:    12,
			JoinDate:     "2024-01-15",
			LastActivity: "2 hours ago",
		},
		{
			ID:           "2",
			Name:         "Michael Brown",
			Email:        "m.brown@email.com",
			Phone:        "15550124",
			Stage:        "Prospect",
			Status:       StatusPending,
			Tags:         []string{"New Client"},
			Disputes:     1,
			Tasks:        1,
			Documents:    4,
			JoinDate:     "2024-01-20",
			LastActivity: "1 day ago",
		},
		{
			ID:           "3",
			Name:         "Jennifer Davis",
			Email:        "jen.davis@email.com",
			Phone:        "15550125",
			Stage:        "Active Client",
			Status:       StatusActive,
			Tags:         []string{"Referral"},
			Disputes:     5,
			Tasks:        3,
			Documents:    10,
			JoinDate:     "2024-01-10",
			LastActivity: "3 hours ago",
		},
	}
	for i := range seed {
		seed[i].Project()
	}
	return seed
}
