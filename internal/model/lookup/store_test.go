package lookup

import "testing"

func TestDirectoryFind(t *testing.T) {
	dir := NewDirectory(Seed())

	got, ok := dir.Find("aaryan")
	if !ok {
		t.Fatal("expected aaryan to be present")
	}
	if got.Age != 19 || got.Gender != "male" {
		t.Fatalf("unexpected person: %+v", got)
	}

	if _, ok := dir.Find("unknown"); ok {
		t.Fatal("expected unknown to be absent")
	}
}

func TestDirectoryIsolatedFromSource(t *testing.T) {
	seed := Seed()
	dir := NewDirectory(seed)
	seed["aaryan"] = Person{Age: 99, Gender: "x"}
	delete(seed, "sakshi")

	if got, _ := dir.Find("aaryan"); got.Age != 19 {
		t.Fatalf("directory changed with source map: %+v", got)
	}
	if _, ok := dir.Find("sakshi"); !ok {
		t.Fatal("expected sakshi to survive source deletion")
	}
}

func TestDirectoryNamesSorted(t *testing.T) {
	names := NewDirectory(Seed()).Names()
	want := []string{"aaryan", "sakshi", "vaishnavee"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}
