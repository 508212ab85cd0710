//go:build !windows

package icon

func trayBytes(i *Image) []byte {
	return i.PNG()
}
