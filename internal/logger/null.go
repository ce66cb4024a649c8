package logger

// nullWritter discards everything written to it
type nullWritter struct{}

func (w *nullWritter) Write(b []byte) (n int, err error) {
	return len(b), nil
}
