// Command ca runs, streams, sweeps and views the bundled cellular automata.
package main

func main() {
	Execute()
}
