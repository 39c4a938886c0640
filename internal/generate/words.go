package generate

// Word pools for synthetic names and titles. Small on purpose: the data only
// has to look plausible, collisions are fine.

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael",
	"Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan",
	"Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen", "Daniel",
	"Lisa", "Matthew", "Nancy", "Anthony", "Betty", "Mark", "Margaret",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
}

var titleWords = []string{
	"midnight", "silver", "broken", "electric", "golden", "silent", "hidden",
	"burning", "frozen", "wandering", "city", "river", "shadow", "horizon",
	"echo", "garden", "winter", "summer", "storm", "mirror", "voyage",
	"signal", "harbor", "ember", "crown", "paper", "velvet", "thunder",
}

var deviceTypes = []string{"mobile", "tablet", "desktop", "smart_tv"}

var countries = []string{
	"United States", "Canada", "United Kingdom", "Australia", "India",
}
