package storage

// SeedTickets returns the demo set of pre-resolved connection-pool incidents.
// The similarity scores are fixed display metadata, not computed relevance.
func SeedTickets() []CreateTicketParams {
	return []CreateTicketParams{
		{
			TicketNumber: "TICKET-2847",
			Title:        "Database connection timeout in production",
			Description:  "Similar connection pool exhaustion issue resolved by increasing max pool size from 20 to 50 connections.",
			Status:       "resolved",
			Priority:     "high",
			AssignedTo:   ptr("Sarah Chen"),
			ResolvedBy:   ptr("Sarah Chen"),
			Environment:  ptr("production"),
			IssueType:    ptr("database"),
			Similarity:   intPtr(95),
			Resolution:   ptr("Increased connection pool size and implemented connection leak detection"),
		},
		{
			TicketNumber: "TICKET-2791",
			Title:        "Spring Boot DataSource connection failures",
			Description:  "Connection leak in transaction management caused similar timeout errors.",
			Status:       "resolved",
			Priority:     "medium",
			AssignedTo:   ptr("Mike Rodriguez"),
			ResolvedBy:   ptr("Mike Rodriguez"),
			Environment:  ptr("production"),
			IssueType:    ptr("application"),
			Similarity:   intPtr(87),
			Resolution:   ptr("Fixed transaction management to properly close connections"),
		},
		{
			TicketNumber: "TICKET-2756",
			Title:        "MySQL connection pool exhaustion",
			Description:  "High load causing database connection timeouts during peak hours.",
			Status:       "resolved",
			Priority:     "high",
			AssignedTo:   ptr("Jennifer Liu"),
			ResolvedBy:   ptr("Jennifer Liu"),
			Environment:  ptr("production"),
			IssueType:    ptr("database"),
			Similarity:   intPtr(78),
			Resolution:   ptr("Optimized queries and implemented connection pooling best practices"),
		},
	}
}

func ptr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
