package pe200_test

// fakePort scripts the pump side of an exchange. Each ReadLine pops
// the next queued reply; when the queue runs dry it answers "ok".
type fakePort struct {
	writes  []string
	replies []string
	drains  int
}

func (f *fakePort) Write(p []byte) (int, error) {
	f.writes = append(f.writes, string(p))
	return len(p), nil
}

func (f *fakePort) ReadLine() (string, error) {
	if len(f.replies) == 0 {
		return "ok", nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

func (f *fakePort) Drain() error {
	f.drains++
	return nil
}

func (f *fakePort) countWrites(line string) int {
	n := 0
	for _, w := range f.writes {
		if w == line {
			n++
		}
	}
	return n
}
