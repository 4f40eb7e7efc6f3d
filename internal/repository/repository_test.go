package repository

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jengzang/igs-backend-go/internal/database"
	"github.com/jengzang/igs-backend-go/internal/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "igs.db")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(openTestDB(t))

	s := &models.Session{ID: "s1", Name: "classroom"}
	if err := repo.Create(s); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(&models.Session{ID: "s2"}); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetByID("s1")
	if err != nil || got == nil || got.Name != "classroom" || got.CreatedAt.IsZero() {
		t.Fatalf("get: %+v %v", got, err)
	}
	if missing, err := repo.GetByID("nope"); missing != nil || err != nil {
		t.Fatalf("missing session: %+v %v", missing, err)
	}

	if err := repo.Touch("s1"); err != nil {
		t.Fatal(err)
	}

	list, err := repo.List()
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %+v %v", list, err)
	}

	if err := repo.Delete("s1"); err != nil {
		t.Fatal(err)
	}
	if got, _ := repo.GetByID("s1"); got != nil {
		t.Fatalf("deleted session still present")
	}
}

func TestFileRepository(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	files := NewFileRepository(db)

	if err := sessions.Create(&models.Session{ID: "s1"}); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"ana.csv", "talk.csv", "plan.png"} {
		f := &models.SessionFile{SessionID: "s1", Name: name, Kind: models.FileKindCSV, Content: []byte(name)}
		if err := files.Append(f); err != nil {
			t.Fatalf("append %s: %v", name, err)
		}
		if f.ID == 0 || f.Size != int64(len(name)) {
			t.Fatalf("appended file %+v", f)
		}
	}

	list, err := files.ListBySession("s1")
	if err != nil || len(list) != 3 {
		t.Fatalf("list: %d %v", len(list), err)
	}
	for i, f := range list {
		if f.Seq != i+1 || string(f.Content) != f.Name {
			t.Fatalf("file %d: %+v", i, f)
		}
	}

	if err := sessions.Delete("s1"); err != nil {
		t.Fatal(err)
	}
	if list, _ := files.ListBySession("s1"); len(list) != 0 {
		t.Fatalf("files survived session delete: %d", len(list))
	}
}

func TestFileRepositoryRequiresSession(t *testing.T) {
	files := NewFileRepository(openTestDB(t))
	err := files.Append(&models.SessionFile{SessionID: "ghost", Name: "a.csv", Kind: models.FileKindCSV})
	if err == nil {
		t.Fatalf("file for unknown session accepted")
	}
}
