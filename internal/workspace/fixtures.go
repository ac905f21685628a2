package workspace

// SeedProjects returns the demo projects a fresh store starts with.
func SeedProjects() []Project {
	return []Project{
		{
			ID: 1, Name: "E-Commerce Platform", Type: TypeDevelopment, Status: ProjectActive,
			Progress: 75, DueDate: "2025-09-15", Client: "Acme Retail",
			TasksCount: TasksCount{Todo: 5, InProgress: 3, Review: 2, Done: 12},
		},
		{
			ID: 2, Name: "Mobile App Update", Type: TypeMaintenance, Status: ProjectActive,
			Progress: 45, DueDate: "2025-08-30",
			TasksCount: TasksCount{Todo: 8, InProgress: 2, Review: 1, Done: 6},
		},
		{
			ID: 3, Name: "Website Redesign", Type: TypeDevelopment, Status: ProjectCompleted,
			Progress: 100, DueDate: "2025-07-31",
			TasksCount: TasksCount{Done: 14},
		},
		{
			ID: 4, Name: "API Integration", Type: TypeDevelopment, Status: ProjectOnHold,
			Progress: 30, DueDate: "2025-10-01",
			TasksCount: TasksCount{Todo: 4, InProgress: 1, Done: 2},
		},
	}
}

// SeedTasks returns the demo tasks a fresh store starts with.
func SeedTasks() []Task {
	return []Task{
		{ID: 1, Title: "Implement payment gateway", ProjectID: 1, ProjectName: "E-Commerce Platform", Status: StatusInProgress, Priority: PriorityHigh, DueDate: "2025-08-10", Assignee: "John Doe"},
		{ID: 2, Title: "Fix mobile responsive issues", ProjectID: 2, ProjectName: "Mobile App Update", Status: StatusReview, Priority: PriorityMedium, DueDate: "2025-08-12", Assignee: "Jane Smith"},
		{ID: 3, Title: "Update documentation", ProjectID: 1, ProjectName: "E-Commerce Platform", Status: StatusTodo, Priority: PriorityLow, DueDate: "2025-08-15"},
		{ID: 4, Title: "Database optimization", ProjectID: 2, ProjectName: "Mobile App Update", Status: StatusTodo, Priority: PriorityHigh, DueDate: "2025-08-08", Assignee: "Mike Johnson"},
		{ID: 5, Title: "Security audit implementation", ProjectID: 3, ProjectName: "Website Redesign", Status: StatusDone, Priority: PriorityHigh, DueDate: "2025-07-25", Assignee: "Sarah Wilson"},
		{ID: 6, Title: "API endpoint testing", ProjectID: 4, ProjectName: "API Integration", Status: StatusInProgress, Priority: PriorityMedium, DueDate: "2025-08-20", Assignee: "David Brown"},
		{ID: 7, Title: "User interface improvements", ProjectID: 1, ProjectName: "E-Commerce Platform", Status: StatusReview, Priority: PriorityMedium, DueDate: "2025-08-18"},
		{ID: 8, Title: "Performance optimization", ProjectID: 2, ProjectName: "Mobile App Update", Status: StatusTodo, Priority: PriorityLow, DueDate: "2025-08-25", Assignee: "Emily Davis"},
	}
}
