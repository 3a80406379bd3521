package skills

// Category names of the built-in database, in precedence order.
const (
	CategoryProgrammingLanguages = "programming_languages"
	CategoryFrameworks           = "frameworks"
	CategoryDatabases            = "databases"
	CategoryTools                = "tools"
	CategoryOfficeApplications   = "office_applications"
	CategoryAnalyticsTools       = "analytics_tools"
	CategoryDesignTools          = "design_tools"
	CategoryFinancialTools       = "financial_tools"
	CategoryConcepts             = "concepts"
	CategorySoft                 = "soft"
)

func builtinCategories() []Category {
	return []Category{
		{Name: CategoryProgrammingLanguages, Skills: []string{
			"python", "java", "javascript", "typescript", "c++", "c#", "php", "ruby", "go", "rust",
			"swift", "kotlin", "scala", "r", "matlab", "sql", "html", "css", "dart", "perl", "bash", "powershell",
		}},
		{Name: CategoryFrameworks, Skills: []string{
			"react", "angular", "vue", "node.js", "express", "django", "flask", "spring", "rails", "laravel",
			"asp.net", "bootstrap", "jquery", "react native", "flutter", "ionic", "xamarin",
		}},
		{Name: CategoryDatabases, Skills: []string{
			"mysql", "postgresql", "mongodb", "redis", "sqlite", "oracle", "sql server", "cassandra", "dynamodb", "elasticsearch",
		}},
		{Name: CategoryTools, Skills: []string{
			"git", "docker", "kubernetes", "jenkins", "travis", "aws", "azure", "gcp", "terraform", "ansible",
			"vagrant", "webpack", "npm", "yarn", "maven", "gradle", "jira", "confluence", "slack", "trello",
		}},
		{Name: CategoryOfficeApplications, Skills: []string{
			"excel", "microsoft excel", "word", "microsoft word", "powerpoint", "microsoft powerpoint",
			"outlook", "microsoft outlook", "access", "microsoft access", "visio", "microsoft visio",
			"project", "microsoft project", "sharepoint", "onedrive", "teams",
		}},
		{Name: CategoryAnalyticsTools, Skills: []string{
			"tableau", "power bi", "qlik", "looker", "sas", "spss", "stata", "alteryx", "knime", "rapidminer",
			"snowflake", "databricks",
		}},
		{Name: CategoryDesignTools, Skills: []string{
			"photoshop", "illustrator", "indesign", "figma", "sketch", "adobe creative suite", "canva", "autocad", "solidworks",
		}},
		{Name: CategoryFinancialTools, Skills: []string{
			"quickbooks", "sap", "oracle financials", "netsuite", "salesforce", "hubspot", "marketo", "mailchimp",
		}},
		{Name: CategoryConcepts, Skills: []string{
			"machine learning", "ai", "data science", "web development", "mobile development", "devops",
			"agile", "scrum", "api", "microservices", "cloud computing", "cybersecurity", "blockchain",
		}},
		{Name: CategorySoft, Skills: []string{
			"leadership", "teamwork", "communication", "problem solving", "analytical thinking", "creativity",
			"adaptability", "time management", "project management", "collaboration", "critical thinking",
		}},
	}
}
