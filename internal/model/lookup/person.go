package lookup

// Person is the demographic record served by the hello-world lookup.
type Person struct {
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// Seed provides the fixed entries the lookup endpoint serves.
func Seed() map[string]Person {
	return map[string]Person{
		"aaryan":     {Age: 19, Gender: "male"},
		"sakshi":     {Age: 46, Gender: "female"},
		"vaishnavee": {Age: 16, Gender: "female"},
	}
}
