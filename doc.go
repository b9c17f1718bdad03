// Package interaction turns a callback-driven event source, such as a button that fires
// every time it is tapped, into a Publisher that Subscribers attach to and cancel.
//
// A Subscriber receives OnSubscribe once and then one OnSignal per firing of the
// observed event, delivered synchronously on the goroutine that fired it. Publishers
// are push-only: the Demand returned by OnSignal and passed to Request is accepted but
// never used to gate delivery, and nothing is buffered or replayed.
//
//	c := interaction.NewControl()
//	var bag interaction.Bag
//	interaction.Sink(c.Publisher(interaction.PrimaryActivation), func() {
//		fmt.Println("tapped")
//	}).Store(&bag)
//
//	c.Fire(interaction.PrimaryActivation) // prints "tapped"
//	bag.CancelAll()
//	c.Fire(interaction.PrimaryActivation) // prints nothing
package interaction
