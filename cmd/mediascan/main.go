// Command mediascan catalogs video files and reports continuity and
// consistency problems in TV seasons.
package main

func main() {
	Execute()
}
