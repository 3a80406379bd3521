package patterns

// Section keyword tables. Matching is a case-insensitive substring test.
var (
	EducationKeywords      = []string{"education", "academic", "academic background"}
	ExperienceKeywords     = []string{"experience", "work", "employment", "internship", "work experience", "professional experience"}
	SkillsKeywords         = []string{"skills", "technical", "competencies", "technical skills", "core competencies"}
	ProjectsKeywords       = []string{"projects", "personal projects", "academic projects"}
	CertificationsKeywords = []string{"certifications", "certificates", "credentials"}
	ReferencesKeywords     = []string{"references"}
	AwardsKeywords         = []string{"awards", "honors", "achievements"}
	PublicationsKeywords   = []string{"publications", "papers", "articles"}
	VolunteerKeywords      = []string{"volunteer", "community service", "volunteering"}
	LanguagesKeywords      = []string{"languages", "language skills"}
	InterestsKeywords      = []string{"interests", "hobbies", "activities"}
)

// LayoutHeaderKeywords count as a header signal when a layout line contains one.
var LayoutHeaderKeywords = []string{"education", "experience", "skills", "projects", "certifications", "references"}

// Layout section title matchers, one per core entity.
var (
	LayoutEducationTitles  = []string{"education", "academic", "school"}
	LayoutExperienceTitles = []string{"experience", "employment", "work history", "internship"}
	LayoutSkillsTitles     = []string{"skill", "competenc", "technical", "technolog"}
)

// CommonSectionHeaders are lines that always end a section when found by the segmenter.
var CommonSectionHeaders = []string{
	"education", "experience", "work experience", "employment",
	"skills", "technical skills", "core competencies",
	"projects", "personal projects", "key projects",
	"certifications", "certificates", "awards",
	"summary", "objective", "profile",
	"activities", "volunteer", "leadership",
}

// NonNameHeaders are short top-of-page lines that are never a candidate's name.
var NonNameHeaders = []string{"resume", "cv", "curriculum vitae", "contact", "profile"}

// RoleKeywords identify job titles when they co-occur with a date.
var RoleKeywords = []string{
	"intern", "analyst", "associate", "coordinator", "specialist",
	"manager", "director", "engineer", "developer", "consultant",
}

// JobKeywords are the broader set used to recognise short role lines.
var JobKeywords = append(append([]string{}, RoleKeywords...),
	"assistant", "representative", "officer", "lead", "senior",
	"team", "services", "support", "sales", "marketing",
)

// PipeRoleKeywords mark a pipe-delimited line as a job header.
var PipeRoleKeywords = []string{"intern", "engineer", "analyst", "associate", "manager"}

// DescriptionStarters open lines that describe work rather than name an employer.
var DescriptionStarters = []string{
	"file ", "analyze ", "ensure ", "record ", "maintain ", "assisted ",
	"processed ", "communicated ", "collaborated ", "worked with",
	"managed ", "developed ", "created ", "implemented ", "led ",
	"responsible for", "coordinated ", "supervised ", "filmed and edited",
}

// BulletMarkers are stripped from the start of description lines.
var BulletMarkers = []string{"•", "-", "*", "◦"}

// Validation limits applied by the extractors.
const (
	MaxNameLength   = 50
	MaxNameWords    = 4
	NameSearchLines = 5
	MaxHeaderLength = 50
	MinYear         = 1970
	MaxYear         = 2030
	MinGPA          = 0.0
	MaxGPA          = 4.0
)
