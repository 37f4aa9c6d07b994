// Package sharelink formats the public deep link a share token is
// redeemed through. The token is the only state the link carries.
package sharelink

import "fmt"

func Format(botUsername, shareToken string) string {
	return fmt.Sprintf("https://t.me/%s?start=%s", botUsername, shareToken)
}
