package skill

import "sync"

var (
	defaultOnce  sync.Once
	defaultVocab *Vocabulary
)

func Default() *Vocabulary {
	defaultOnce.Do(func() {
		defaultVocab = NewVocabulary(DefaultEntries())
	})
	return defaultVocab
}

func DefaultEntries() []Entry {
	return []Entry{
		{CanonicalID: "go", Name: "Go", Category: CategoryLanguage, Aliases: []string{"golang", "go lang"}},
		{CanonicalID: "python", Name: "Python", Category: CategoryLanguage, Aliases: []string{"py", "python3"}},
		{CanonicalID: "javascript", Name: "JavaScript", Category: CategoryLanguage, Aliases: []string{"js", "ecmascript", "es6"}},
		{CanonicalID: "typescript", Name: "TypeScript", Category: CategoryLanguage, Aliases: []string{"ts"}},
		{CanonicalID: "java", Name: "Java", Category: CategoryLanguage},
		{CanonicalID: "kotlin", Name: "Kotlin", Category: CategoryLanguage},
		{CanonicalID: "c#", Name: "C#", Category: CategoryLanguage, Aliases: []string{"csharp", "c sharp"}},
		{CanonicalID: "c++", Name: "C++", Category: CategoryLanguage, Aliases: []string{"cpp"}},
		{CanonicalID: "rust", Name: "Rust", Category: CategoryLanguage},
		{CanonicalID: "sql", Name: "SQL", Category: CategoryLanguage},

		{CanonicalID: "react", Name: "React", Category: CategoryFramework, Aliases: []string{"reactjs", "react.js"}},
		{CanonicalID: "vue", Name: "Vue", Category: CategoryFramework, Aliases: []string{"vuejs", "vue.js"}},
		{CanonicalID: "angular", Name: "Angular", Category: CategoryFramework, Aliases: []string{"angularjs"}},
		{CanonicalID: "next.js", Name: "Next.js", Category: CategoryFramework, Aliases: []string{"nextjs", "next"}},
		{CanonicalID: "node.js", Name: "Node.js", Category: CategoryFramework, Aliases: []string{"nodejs", "node"}},
		{CanonicalID: "fastapi", Name: "FastAPI", Category: CategoryFramework, Aliases: []string{"fast api"}},
		{CanonicalID: "django", Name: "Django", Category: CategoryFramework},
		{CanonicalID: "spring", Name: "Spring", Category: CategoryFramework, Aliases: []string{"spring boot", "springboot"}},

		{CanonicalID: "postgresql", Name: "PostgreSQL", Category: CategoryTechnical, Aliases: []string{"postgres", "psql", "pg"}},
		{CanonicalID: "mongodb", Name: "MongoDB", Category: CategoryTechnical, Aliases: []string{"mongo"}},
		{CanonicalID: "redis", Name: "Redis", Category: CategoryTechnical},
		{CanonicalID: "machine learning", Name: "Machine Learning", Category: CategoryTechnical, Aliases: []string{"ml"}},
		{CanonicalID: "distributed systems", Name: "Distributed Systems", Category: CategoryTechnical},

		{CanonicalID: "docker", Name: "Docker", Category: CategoryTool},
		{CanonicalID: "kubernetes", Name: "Kubernetes", Category: CategoryTool, Aliases: []string{"k8s", "kube"}},
		{CanonicalID: "terraform", Name: "Terraform", Category: CategoryTool, Aliases: []string{"tf"}},
		{CanonicalID: "git", Name: "Git", Category: CategoryTool},
		{CanonicalID: "aws", Name: "AWS", Category: CategoryTool, Aliases: []string{"amazon web services"}},
		{CanonicalID: "gcp", Name: "GCP", Category: CategoryTool, Aliases: []string{"google cloud", "google cloud platform"}},

		{CanonicalID: "aws certified solutions architect", Name: "AWS Certified Solutions Architect", Category: CategoryCertification, Aliases: []string{"aws csa", "aws solutions architect"}},
		{CanonicalID: "cka", Name: "Certified Kubernetes Administrator", Category: CategoryCertification, Aliases: []string{"certified kubernetes administrator"}},
		{CanonicalID: "pmp", Name: "PMP", Category: CategoryCertification, Aliases: []string{"project management professional"}},

		{CanonicalID: "communication", Name: "Communication", Category: CategorySoft, Aliases: []string{"communication skills"}},
		{CanonicalID: "leadership", Name: "Leadership", Category: CategorySoft, Aliases: []string{"team leadership"}},
		{CanonicalID: "problem solving", Name: "Problem Solving", Category: CategorySoft, Aliases: []string{"problem-solving"}},
	}
}
