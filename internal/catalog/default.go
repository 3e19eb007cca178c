package catalog

import "github.com/fairyhunter13/resume-screener/internal/domain"

func sk(name string, importance int) domain.SkillRequirement {
	return domain.SkillRequirement{Skill: name, Importance: importance}
}

// Default returns the built-in catalog: seven domains with ten weighted
// skills each. Deployments can replace it via a YAML file (see LoadFile).
func Default() *Catalog {
	return New([]Entry{
		{Name: "Data Scientist", Skills: []domain.SkillRequirement{
			sk("python", 5), sk("pandas", 5), sk("numpy", 5), sk("scikit-learn", 5),
			sk("machine learning", 5), sk("statistics", 4), sk("sql", 4), sk("visualization", 3),
			sk("spark", 3), sk("tensorflow", 4),
		}},
		{Name: "AI/ML Engineer", Skills: []domain.SkillRequirement{
			sk("python", 5), sk("deep learning", 5), sk("pytorch", 5), sk("tensorflow", 5),
			sk("computer vision", 4), sk("nlp", 4), sk("docker", 3), sk("mlops", 3),
			sk("keras", 3), sk("cuda", 2),
		}},
		{Name: "Frontend Developer", Skills: []domain.SkillRequirement{
			sk("html", 5), sk("css", 5), sk("javascript", 5), sk("react", 5),
			sk("typescript", 4), sk("webpack", 3), sk("vue", 3), sk("accessibility", 3),
			sk("performance", 3), sk("testing", 3),
		}},
		{Name: "Backend Developer", Skills: []domain.SkillRequirement{
			sk("python", 5), sk("django", 5), sk("flask", 4), sk("node.js", 4),
			sk("sql", 4), sk("rest api", 4), sk("docker", 3), sk("microservices", 4),
			sk("postgresql", 3), sk("redis", 3),
		}},
		{Name: "Cloud Engineer", Skills: []domain.SkillRequirement{
			sk("aws", 5), sk("azure", 5), sk("gcp", 5), sk("docker", 4),
			sk("kubernetes", 4), sk("terraform", 4), sk("serverless", 3), sk("monitoring", 3),
			sk("ci/cd", 4), sk("security", 3),
		}},
		{Name: "Software Engineer", Skills: []domain.SkillRequirement{
			sk("python", 5), sk("java", 5), sk("data structures", 5), sk("algorithms", 5),
			sk("git", 4), sk("oop", 4), sk("system design", 4), sk("microservices", 3),
			sk("concurrency", 3), sk("testing", 3),
		}},
		{Name: "QA Engineer", Skills: []domain.SkillRequirement{
			sk("testing", 5), sk("selenium", 4), sk("pytest", 4), sk("manual testing", 5),
			sk("automation", 4), sk("performance testing", 3), sk("api testing", 3),
			sk("bug tracking", 3), sk("rest api", 3), sk("ci/cd", 3),
		}},
	})
}
