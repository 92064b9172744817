// Command portfolio browses the portfolio page in the terminal, renders it
// once to stdout, manages the stored theme, or serves the page over SSH.
package main

func main() {
	Execute()
}
