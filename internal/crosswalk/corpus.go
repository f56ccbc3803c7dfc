// internal/crosswalk/corpus.go
package crosswalk

import "grant-crosswalk/internal/models"

// areaKeywordMap drives identifyMatchingAreas: each program area is
// recognized by case-insensitive substring hits from its keyword list.
// Areas may exist here without a corpus entry (workforce, evaluation);
// they contribute to recognition but cannot be linked.
var areaKeywordMap = map[string][]string{
	"reentry": {
		"transitional housing", "justice-involved", "recidivism", "corrections", "incarcerated",
		"reentry", "criminal justice", "formerly incarcerated", "post-incarceration",
	},
	"fatherhood": {
		"Responsible Fatherhood Classes", "co-parenting", "father engagement",
		"paternity", "father presence", "fatherhood education", "parenting skills",
		"fatherhood curriculum",
	},
	"workforce": {
		"job readiness", "resume", "certification", "OSHA", "employment", "economic mobility",
		"career pathway", "job training", "vocational", "employment services",
	},
	"case_management": {
		"Plans of Care", "wraparound", "barrier removal",
		"case management", "individualized", "service coordination", "continuity of care",
	},
	"prevention": {
		"protective factors", "child welfare", "abuse prevention", "neglect",
		"prevention services", "family preservation", "family support",
	},
	"evaluation": {
		"pre/post assessment", "outcomes", "outcome measurement",
		"data collection", "metrics", "evaluation tool", "performance data",
	},
	"financial_literacy": {
		"budgeting", "banking", "credit", "financial empowerment", "financial management",
		"money management", "financial planning", "financial stability",
	},
	"celebration_events": {
		"Celebration of Fatherhood", "events", "bonding", "engagement", "community",
		"celebration", "quarterly", "fatherhood event",
	},
}

// DefaultCorpus returns the built-in organizational content library, used
// when the caller supplies no corpus of its own.
func DefaultCorpus() map[string]models.ContentCorpusEntry {
	return map[string]models.ContentCorpusEntry{
		"reentry": {
			Area: "reentry",
			Name: "Reentry and Workforce Program",
			Content: "Our reentry program provides comprehensive reentry and workforce " +
				"development services for justice-involved individuals returning to the community. " +
				"The program combines case management, job readiness training, and peer mentorship " +
				"to support successful reintegration and economic mobility. Services are tailored " +
				"to address common reentry barriers including employment, housing, and social support.",
			Tags: []string{"reentry", "workforce", "justice-involved"},
		},
		"fatherhood": {
			Area: "fatherhood",
			Name: "Responsible Fatherhood Classes",
			Content: "We offer comprehensive fatherhood education through a 14-lesson curriculum " +
				"designed to strengthen father-child relationships and promote co-parenting skills. " +
				"Responsible Fatherhood Classes cover communication, emotional intelligence, financial " +
				"management, and parenting best practices. Participants engage in interactive activities " +
				"and peer support to enhance engagement and accountability.",
			Tags: []string{"fatherhood", "education", "curriculum"},
		},
		"case_management": {
			Area: "case_management",
			Name: "Family Build Case Management",
			Content: "Our case management service provides wraparound support that coordinates " +
				"services across programs and community partners. Individualized Plans of Care " +
				"address family needs holistically, removing barriers to engagement and achieving " +
				"measurable outcomes in child welfare prevention, economic stability, and family " +
				"preservation. Services are delivered with cultural competency and trauma-informed practice.",
			Tags: []string{"case_management", "wraparound", "family"},
		},
		"prevention": {
			Area: "prevention",
			Name: "Child Welfare Prevention",
			Content: "Our prevention services strengthen protective factors in families and communities, " +
				"reducing risk for child abuse and neglect. Through family support, parenting education, " +
				"and community engagement, we build resilience and address root causes of family stress. " +
				"Services target vulnerable populations and employ evidence-based interventions aligned " +
				"with state child welfare standards.",
			Tags: []string{"prevention", "child_welfare", "protective"},
		},
		"financial_literacy": {
			Area: "financial_literacy",
			Name: "Financial Literacy and Economic Mobility",
			Content: "Financial literacy is integrated across all programs, teaching budgeting, banking, " +
				"credit management, and financial planning. Our approach empowers individuals to achieve " +
				"economic stability and build assets for long-term success. Curriculum is practical, " +
				"culturally relevant, and outcomes-focused, with tracked improvements in financial " +
				"knowledge and behaviors.",
			Tags: []string{"financial_literacy", "economic_mobility"},
		},
		"celebration_events": {
			Area: "celebration_events",
			Name: "Celebration of Fatherhood Events",
			Content: "We host quarterly Celebration of Fatherhood events that bring together fathers, " +
				"children, and families for bonding, celebration, and community. These events strengthen " +
				"engagement, build social capital, and demonstrate the value of active fatherhood. " +
				"Activities are designed to be inclusive, fun, and culturally affirming.",
			Tags: []string{"celebration", "engagement", "community"},
		},
	}
}
