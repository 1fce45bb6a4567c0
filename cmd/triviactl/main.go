// Command triviactl administers the trivia database: schema migrations and
// category management.
package main

func main() {
	Execute()
}
