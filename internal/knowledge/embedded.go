package knowledge

// The embedded base mirrors data/risks.yaml and data/references.yaml. It is
// what a fresh checkout runs on before anyone curates their own documents,
// and what keeps the binary self-contained in demos.

var embeddedReferences = []ReferenceEntry{
	{
		ID:      "ruckenstein2022",
		Authors: "Ruckenstein, M.; Granroth, J.",
		Year:    2022,
		Title:   "Definition drives design — Disability models and mechanisms of bias in AI technologies",
		Venue:   "arXiv preprint",
		DOI:     "10.48550/arXiv.2206.08287",
		URL:     "https://arxiv.org/abs/2206.08287",
	},
	{
		ID:      "mosqueira2023",
		Authors: "Mosqueira-Rey, E.; et al.",
		Year:    2023,
		Title:   "Human-in-the-loop Machine Learning — A State of the Art",
		Venue:   "Artificial Intelligence Review (Springer)",
		DOI:     "10.1007/s10462-022-10246-w",
		URL:     "https://link.springer.com/article/10.1007/s10462-022-10246-w",
	},
	{
		ID:      "mehrabi2022",
		Authors: "Mehrabi, N.; et al.",
		Year:    2022,
		Title:   "A survey on bias and fairness in machine learning",
		Venue:   "ACM Computing Surveys",
		DOI:     "10.1145/3457607",
		URL:     "https://dl.acm.org/doi/10.1145/3457607",
	},
	{
		ID:      "zoller2024",
		Authors: "Zöller, C.; et al.",
		Year:    2024,
		Title:   "The impact of AI errors in a human-in-the-loop process",
		Venue:   "PLOS ONE (PMC)",
		DOI:     "10.1371/journal.pone.0296535",
		URL:     "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC10772030/",
	},
	{
		ID:      "kim2023",
		Authors: "Kim, J.; et al.",
		Year:    2023,
		Title:   "Designerly Understanding: Information Needs for Model Transparency to Support Design Ideation for AI-Powered UX",
		Venue:   "arXiv preprint",
		DOI:     "10.48550/arXiv.2302.10395",
		URL:     "https://arxiv.org/abs/2302.10395",
	},
	{
		ID:      "buolamwini2018",
		Authors: "Buolamwini, J.; Gebru, T.",
		Year:    2018,
		Title:   "Gender Shades: Intersectional Accuracy Disparities in Commercial Gender Classification",
		Venue:   "Proceedings of Machine Learning Research (FAT*)",
		URL:     "https://proceedings.mlr.press/v81/buolamwini18a.html",
	},
	{
		ID:      "amershi2019",
		Authors: "Amershi, S.; et al.",
		Year:    2019,
		Title:   "Guidelines for Human-AI Interaction",
		Venue:   "CHI Conference on Human Factors in Computing Systems",
		DOI:     "10.1145/3290605.3300233",
		URL:     "https://dl.acm.org/doi/10.1145/3290605.3300233",
	},
	{
		ID:      "gray2018",
		Authors: "Gray, C. M.; et al.",
		Year:    2018,
		Title:   "The Dark (Patterns) Side of UX Design",
		Venue:   "CHI Conference on Human Factors in Computing Systems",
		DOI:     "10.1145/3173574.3174108",
		URL:     "https://dl.acm.org/doi/10.1145/3173574.3174108",
	},
	{
		ID:      "holstein2019",
		Authors: "Holstein, K.; et al.",
		Year:    2019,
		Title:   "Improving Fairness in Machine Learning Systems: What Do Industry Practitioners Need?",
		Venue:   "CHI Conference on Human Factors in Computing Systems",
		DOI:     "10.1145/3290605.3300830",
		URL:     "https://dl.acm.org/doi/10.1145/3290605.3300830",
	},
	{
		ID:      "liao2020",
		Authors: "Liao, Q. V.; Gruen, D.; Miller, S.",
		Year:    2020,
		Title:   "Questioning the AI: Informing Design Practices for Explainable AI User Experiences",
		Venue:   "CHI Conference on Human Factors in Computing Systems",
		DOI:     "10.1145/3313831.3376590",
		URL:     "https://dl.acm.org/doi/10.1145/3313831.3376590",
	},
	{
		ID:      "utz2019",
		Authors: "Utz, C.; et al.",
		Year:    2019,
		Title:   "(Un)informed Consent: Studying GDPR Consent Notices in the Field",
		Venue:   "ACM Conference on Computer and Communications Security",
		DOI:     "10.1145/3319535.3354212",
		URL:     "https://dl.acm.org/doi/10.1145/3319535.3354212",
	},
}

var embeddedRisks = []RiskEntry{
	{
		ID:            "risk_desumanizacao",
		Phase:         PhaseUnderstand,
		Title:         "Dehumanization through context-insensitive automation",
		Description:   "Generic models flatten cultural and accessibility context out of user research.",
		Priority:      PriorityHigh,
		Justification: "Generic models can ignore cultural/accessibility context, excluding users and harming adoption.",
		Evidence: []string{
			"Automation can overlook disability models and context.",
			"Cultural misalignment degrades trust and fairness perception.",
		},
		Tags: []string{"accessibility", "inclusion", "human-centred"},
		Mitigations: []string{
			"Include lived-experience users and accessibility experts in reviews.",
			"Add inclusive personas and scenario walkthroughs to decision logs.",
			"Require context notes in prompts and model cards.",
		},
		References: []string{"ruckenstein2022"},
		AIActNote:  "Potential Limited/High risk depending on domain; ensure transparency and accessibility compliance.",
	},
	{
		ID:            "risk_intencionalidade",
		Phase:         PhaseSpecify,
		Title:         "Loss of design intentionality and purpose drift",
		Description:   "Delegated decisions detach the spec from the strategy it was meant to serve.",
		Priority:      PriorityModerate,
		Justification: "Delegating key choices to AI can detach outcomes from strategy, reducing differentiation and value.",
		Evidence: []string{
			"Practitioners report agency/purpose dilution with automation.",
		},
		Tags: []string{"human-oversight", "accountability"},
		Mitigations: []string{
			"Human gates for vision, outcomes, success criteria.",
			"Design rationale log linked to AI-assisted artifacts.",
			"Human approval for changes to goals/metrics.",
		},
		References: []string{"mosqueira2023"},
		AIActNote:  "Transparency and human oversight duties recommended.",
	},
	{
		ID:            "risk_bias",
		Phase:         PhaseUnderstand,
		Title:         "Algorithmic bias and unfair outcomes",
		Description:   "Models trained on skewed data discriminate at scale, from facial recognition errors to unfair rankings.",
		Priority:      PriorityVeryHigh,
		Justification: "Discriminatory outcomes cause legal/reputation risk and exclusion; remediation is costly.",
		Evidence: []string{
			"Bias emerges from data and reinforces discrimination at scale.",
		},
		Tags: []string{"bias", "fairness", "computer-vision"},
		Mitigations: []string{
			"Fairness checks on representative samples before release.",
			"Human override/appeal channel for affected users.",
			"Track disparity metrics by key segments.",
		},
		References: []string{"mehrabi2022", "buolamwini2018"},
		AIActNote:  "High-risk in sensitive domains; rigorous risk management required.",
	},
	{
		ID:            "risk_automation_bias",
		Phase:         PhaseCreate,
		Title:         "Automation bias (over-reliance on AI suggestions)",
		Description:   "Designers accept wrong suggestions because the tool sounded sure of itself.",
		Priority:      PriorityHigh,
		Justification: "Designers may accept wrong AI suggestions, leading to usability defects and misaligned features.",
		Evidence: []string{
			"Human accuracy drops when exposed to erroneous AI outputs.",
		},
		Tags: []string{"human-oversight", "transparency"},
		Mitigations: []string{
			"Show confidence/uncertainty cues.",
			"Force exploration of two or more alternatives before selection.",
			"Error review rituals with human-first judgment.",
		},
		References: []string{"zoller2024", "amershi2019"},
		AIActNote:  "Transparency/logging obligations; promote human oversight.",
	},
	{
		ID:            "risk_transparencia",
		Phase:         PhaseEvaluate,
		Title:         "Lack of traceability and transparency",
		Description:   "Nobody can reconstruct which decisions were model output and why they were accepted.",
		Priority:      PriorityModerate,
		Justification: "Without audit trails/rationale, decisions are indefensible; compliance and trust decline.",
		Evidence: []string{
			"Designers need model transparency artifacts to decide.",
		},
		Tags: []string{"transparency", "logging", "accountability"},
		Mitigations: []string{
			"Model/prompt cards linked to artifacts.",
			"Log AI-assisted changes with who/why.",
			"End-user disclosures where applicable.",
		},
		References: []string{"kim2023"},
		AIActNote:  "Limited-risk transparency duties likely apply.",
	},
	{
		ID:            "risk_privacy",
		Phase:         PhaseUnderstand,
		Title:         "Over-collection of personal data in AI-assisted research",
		Description:   "Research workflows feed raw interviews and session data to hosted models without minimization.",
		Priority:      PriorityHigh,
		Justification: "Uploading user data to third-party models without minimization or explicit consent breaches trust and data-protection duties.",
		Evidence: []string{
			"Consent interfaces routinely nudge users into maximal disclosure.",
		},
		Tags: []string{"privacy", "consent", "data-governance"},
		Mitigations: []string{
			"Strip identifiers before any model call.",
			"Name AI processing explicitly in consent language.",
			"Keep a data inventory for every AI-assisted study.",
		},
		References: []string{"utz2019"},
		AIActNote:  "GDPR applies alongside the AI Act; minimization and lawful basis come first.",
	},
	{
		ID:            "risk_provenance",
		Phase:         PhaseSpecify,
		Title:         "Untracked provenance of AI-generated requirements",
		Description:   "Generated requirements enter the spec with no record of origin or review.",
		Priority:      PriorityModerate,
		Justification: "Specs lose authority when nobody can say which constraints were human decisions and which were generated.",
		Evidence: []string{
			"Teams struggle to reconstruct why a generated requirement exists.",
		},
		Tags: []string{"accountability", "logging", "transparency"},
		Mitigations: []string{
			"Mark generated passages in the spec source.",
			"Review gate before generated requirements become commitments.",
			"Keep prompt and output alongside the artifact.",
		},
		References: []string{"amershi2019"},
		AIActNote:  "Record-keeping duties make provenance gaps an audit finding, not a style issue.",
	},
	{
		ID:            "risk_metric_fixation",
		Phase:         PhaseSpecify,
		Title:         "Proxy metrics displace user outcomes",
		Description:   "AI-optimizable proxies like engagement quietly replace the success criteria users care about.",
		Priority:      PriorityModerate,
		Justification: "Optimizing proxies drifts the product toward what the model can measure, not what users need.",
		Evidence: []string{
			"Metric gaming is a known failure mode of automated optimization.",
		},
		Tags: []string{"accountability", "measurement"},
		Mitigations: []string{
			"Pair every proxy with a directly observed user outcome.",
			"Human sign-off on metric changes.",
			"Review dashboards for proxy drift each cycle.",
		},
		References: []string{"mosqueira2023"},
		AIActNote:  "Minimal-risk in itself, but feeds the oversight duties of whatever it optimizes.",
	},
	{
		ID:            "risk_hallucination",
		Phase:         PhaseCreate,
		Title:         "Fabricated content shipped as fact",
		Description:   "Generated copy, examples, or data reach users without verification.",
		Priority:      PriorityHigh,
		Justification: "Plausible but false generated content erodes trust and can mislead users at scale.",
		Evidence: []string{
			"Generation quality varies sharply with prompt and domain.",
		},
		Tags: []string{"transparency", "factuality"},
		Mitigations: []string{
			"Human review of all user-facing generated text.",
			"Label generated content in the interface.",
			"Keep factual claims out of generation prompts.",
		},
		References: []string{"zoller2024"},
		AIActNote:  "Transparency obligations: users must know content is AI-generated.",
	},
	{
		ID:            "risk_dark_patterns",
		Phase:         PhaseCreate,
		Title:         "Optimization drifts into manipulative patterns",
		Description:   "Interfaces tuned by engagement models converge on nudges users would not endorse.",
		Priority:      PriorityHigh,
		Justification: "Manipulative patterns trade short-term metrics for regulatory exposure and user harm.",
		Evidence: []string{
			"Dark patterns are pervasive where conversion is optimized automatically.",
		},
		Tags: []string{"manipulation", "autonomy", "consent"},
		Mitigations: []string{
			"Audit optimized flows against a dark-pattern checklist.",
			"Set hard floors on cancellation and consent paths.",
			"Include refusal/opt-out rates in the reward signal.",
		},
		References: []string{"gray2018"},
		AIActNote:  "Manipulative techniques can cross into prohibited practice under the AI Act.",
	},
	{
		ID:            "risk_exclusion_eval",
		Phase:         PhaseEvaluate,
		Title:         "Evaluation samples exclude affected users",
		Description:   "Usability and fairness checks run on convenient samples that miss the users most at risk.",
		Priority:      PriorityHigh,
		Justification: "Passing an unrepresentative evaluation creates false confidence and ships harm to the excluded groups.",
		Evidence: []string{
			"Accuracy gaps stay hidden until results are disaggregated by group.",
		},
		Tags: []string{"bias", "inclusion", "accessibility"},
		Mitigations: []string{
			"Disaggregate evaluation results by user group.",
			"Recruit participants from affected and assistive-tech users.",
			"Block release on unexplained group gaps.",
		},
		References: []string{"buolamwini2018", "holstein2019"},
		AIActNote:  "High-risk systems must be tested on data representative of the persons affected.",
	},
	{
		ID:            "risk_explainability",
		Phase:         PhaseEvaluate,
		Title:         "Unexplained AI behavior blocks evaluation",
		Description:   "Evaluators cannot tell whether a confusing interaction is a design flaw or model behavior.",
		Priority:      PriorityModerate,
		Justification: "Without explanations of model behavior, usability findings are unactionable and fixes target the wrong layer.",
		Evidence: []string{
			"Designers ask for model transparency artifacts they rarely get.",
		},
		Tags: []string{"transparency", "explainability"},
		Mitigations: []string{
			"Ship model cards with every evaluated build.",
			"Log model version and settings with each session.",
			"Pair evaluators with someone who can read model traces.",
		},
		References: []string{"liao2020", "kim2023"},
		AIActNote:  "Interpretability expectations scale with the risk tier of the evaluated system.",
	},
}

// Embedded returns a store built from the compiled-in curated base. It goes
// through the same validation as file-backed loads, so a broken edit to the
// embedded tables fails tests rather than shipping.
func Embedded() *Store {
	s, err := build(embeddedRisks, embeddedReferences, true)
	if err != nil {
		panic("knowledge: embedded base invalid: " + err.Error())
	}
	return s
}
