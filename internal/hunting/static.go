package hunting

// KnownExhibitors returns curated exhibitor lists for events whose
// directories are not reliably scrapeable. Merged into every hunt so the
// pipeline still produces leads when a directory is fully client-rendered.
func KnownExhibitors() map[string][]string {
	return map[string][]string{
		"ISA Sign Expo 2025": {
			"CUTWORX USA", "General Formulations", "Laguna Tools Inc.",
			"Lintec of America, Inc.", "Signage Details", "3A Composites USA, Inc.",
			"3M Commercial Solutions", "A.R.K. Ramos Foundry & Mfg. Co.", "Abitech",
			"ADMAX Exhibit & Display Ltd.", "Advanced Greig Laminators, Inc.",
			"Advantage Innovations, Inc", "Aludecor", "Arlon Graphics",
			"Avery Dennison Graphics Solutions",
		},
		"International Sign Association (ISA)": {
			"International Sign Association (ISA)",
		},
	}
}
