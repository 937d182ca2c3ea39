package seeder

func Defaults() []Seeder {
	return []Seeder{
		NamesSeeder{Table: "categories", Items: []string{
			"Engineering", "Design", "Marketing", "Sales", "Finance",
			"Human Resources", "Operations", "Customer Support",
		}},
		NamesSeeder{Table: "skills", Items: []string{
			"Go", "JavaScript", "TypeScript", "Python", "PostgreSQL",
			"Redis", "Docker", "Kubernetes", "AWS", "GCP",
		}},
		NamesSeeder{Table: "positions", Items: []string{
			"Backend Engineer", "Frontend Engineer", "Fullstack Engineer",
			"Product Designer", "Product Manager", "Data Analyst",
		}},
		NamesSeeder{Table: "experience_levels", Items: []string{
			"Intern", "Junior", "Mid", "Senior", "Lead",
		}},
		SalariesSeeder{},
		CompanySizesSeeder{},
	}
}
