package caltest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/churchcal/calrepo/caltest"
	"github.com/churchcal/calrepo/source"
	"github.com/churchcal/calrepo/source/bytes"
	"github.com/churchcal/calrepo/source/fs"
)

func TestBytesSource_Compliance(t *testing.T) {
	factory := func(data []byte) source.Source {
		return bytes.New(data, bytes.WithID("sample"))
	}
	caltest.NewSourceTester(t, factory).TestAll()
}

func TestFsSource_Compliance(t *testing.T) {
	factory := func(data []byte) source.Source {
		path := filepath.Join(t.TempDir(), "sanctorale.yml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		return fs.New(path)
	}

	notExistFactory := func() source.Source {
		return fs.New(filepath.Join(t.TempDir(), "nonexistent.yml"))
	}

	touch := func(s source.Source) error {
		return os.WriteFile(s.(*fs.Source).Path(), []byte("01-17:\n  title: Changed\n"), 0o644)
	}

	caltest.NewSourceTester(t, factory,
		caltest.WithNotExistFactory(notExistFactory),
		caltest.WithTouch(touch),
	).TestAll()
}
