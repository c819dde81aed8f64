package model

import "testing"

func TestCollectionPredicates(t *testing.T) {
	if !IsCollection(CollectionMessages) {
		t.Error("messages should be a known collection")
	}
	if IsPublicCollection(CollectionMessages) {
		t.Error("messages must not be publicly readable")
	}
	if IsPublicCollection(CollectionStats) {
		t.Error("stats must not be listed as a public collection")
	}
	if !IsPublicCollection(CollectionProjects) {
		t.Error("projects should be publicly readable")
	}
	if IsCollection("admins") {
		t.Error("admins is a table, not a content collection")
	}
}

func TestDocumentResource(t *testing.T) {
	doc := Document{
		ID:         "0190a8b0-0000-7000-8000-000000000000",
		Collection: CollectionProjects,
		Data:       `{"title":"Vitrine","stars":3}`,
	}

	res := doc.Resource()
	if res["title"] != "Vitrine" {
		t.Errorf("title = %v", res["title"])
	}
	if res["id"] != doc.ID {
		t.Errorf("id = %v", res["id"])
	}
}

func TestDocumentPayloadCorrupt(t *testing.T) {
	doc := Document{Data: "{not json"}
	if got := doc.Payload(); len(got) != 0 {
		t.Errorf("corrupt payload decoded to %v", got)
	}
}

func TestAdminPublicHidesHash(t *testing.T) {
	admin := Admin{
		ID:           1,
		Email:        "admin@example.com",
		PasswordHash: "$2a$10$secret",
		Name:         "Site Admin",
	}

	pub := admin.Public()
	if pub.Role != DefaultAdminRole {
		t.Errorf("Role = %q, want default", pub.Role)
	}
	if pub.Email != admin.Email {
		t.Errorf("Email = %q", pub.Email)
	}
}
