package cleaning

// DefaultDenylist returns the generic/navigation terms stripped from scraped
// company names. Scraped exhibitor pages are full of nav links and legal
// boilerplate; whole-word removal of these terms keeps precision high without
// a full NLP pass. The list is a tuned business constant; override it through
// configuration rather than editing it here.
func DefaultDenylist() []string {
	return []string{
		"skip", "login", "cart", "menu", "privacy", "terms", "cookie",
		"account", "search", "read more", "click here", "email", "http",
		"©", "legal", "careers", "testimonials", "blog", "newsletter",
		"faq", "404", "undefined", "null", "business management", "contact",
		"skills", "members", "project management", "wage", "report", "board",
		"directors", "category", "page", "home", "about", "services", "products",
	}
}
