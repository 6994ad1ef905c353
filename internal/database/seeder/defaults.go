package seeder

import "skillmatch/internal/domain/skill"

func Defaults() []Seeder {
	return []Seeder{
		SkillsSeeder{Entries: skill.DefaultEntries()},
		DemoJobsSeeder{},
	}
}
