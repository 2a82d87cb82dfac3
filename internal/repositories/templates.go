package repositories

import "interviewprep/api/internal/models"

// DefaultTemplates is the built-in public catalogue seeded at start.
func DefaultTemplates() []models.Interview {
	return []models.Interview{
		{
			Title:       "Frontend Developer Interview",
			Description: "React, TypeScript, CSS, and modern web development best practices",
			Category:    models.CategoryTechnical,
			Difficulty:  models.DifficultyIntermediate,
			Duration:    45,
			Topics:      []string{"React", "TypeScript", "CSS"},
			Role:        "frontend",
			Icon:        "code",
			Color:       "bg-blue-500/10 text-blue-600",
		},
		{
			Title:       "Backend Systems Design",
			Description: "Scalable architecture, databases, and distributed systems",
			Category:    models.CategorySystemDesign,
			Difficulty:  models.DifficultyAdvanced,
			Duration:    60,
			Topics:      []string{"Microservices", "Databases", "Caching"},
			Role:        "backend",
			Icon:        "database",
			Color:       "bg-purple-500/10 text-purple-600",
		},
		{
			Title:       "Leadership & Management",
			Description: "Team leadership, conflict resolution, and strategic thinking",
			Category:    models.CategoryBehavioral,
			Difficulty:  models.DifficultyAdvanced,
			Duration:    30,
			Topics:      []string{"Leadership", "Communication", "Strategy"},
			Icon:        "users",
			Color:       "bg-green-500/10 text-green-600",
		},
		{
			Title:       "Product Strategy Case",
			Description: "Market analysis, product roadmap, and go-to-market strategy",
			Category:    models.CategoryCaseStudy,
			Difficulty:  models.DifficultyAdvanced,
			Duration:    60,
			Topics:      []string{"Strategy", "Analysis", "Product"},
			Icon:        "briefcase",
			Color:       "bg-orange-500/10 text-orange-600",
		},
		{
			Title:       "Data Structures & Algorithms",
			Description: "Arrays, trees, graphs, dynamic programming, and complexity analysis",
			Category:    models.CategoryTechnical,
			Difficulty:  models.DifficultyAdvanced,
			Duration:    45,
			Topics:      []string{"DSA", "Problem Solving", "Optimization"},
			Icon:        "brain",
			Color:       "bg-red-500/10 text-red-600",
		},
		{
			Title:       "Quick Technical Screen",
			Description: "Rapid-fire coding questions for initial technical assessment",
			Category:    models.CategoryTechnical,
			Difficulty:  models.DifficultyBeginner,
			Duration:    15,
			Topics:      []string{"Fundamentals", "Coding"},
			Icon:        "zap",
			Color:       "bg-yellow-500/10 text-yellow-600",
		},
	}
}
