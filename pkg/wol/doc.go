// Package wol ties the device registry, the broadcaster and the notifier
// together.
//
// A Service resolves what the user typed (a registered device name or a raw
// MAC address) to a MAC, broadcasts the magic packet and reports the result:
//
//	svc, _ := wol.New(wol.Config{
//		Broadcaster: b,
//		Registry:    store,
//		Notifier:    notify.NewWriterNotifier(os.Stdout),
//	})
//	out, err := svc.Wake(ctx, "desktop")
//
// Wake returns an error only when the request could not be formed (unknown
// device, registry failure). Delivery results, successful or not, are
// reported in the Outcome and to the Notifier.
package wol
