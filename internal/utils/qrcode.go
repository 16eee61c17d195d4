package utils

import (
    "encoding/base64"

    qrcode "github.com/skip2/go-qrcode"
)

// QRCodeDataURL renders content as a PNG QR code of the given pixel size and
// returns it as a base64 data URL, ready to drop into an <img> tag or an
// email body.  Used for both the UPI payment QR and the admission ticket QR.
func QRCodeDataURL(content string, size int) (string, error) {
    png, err := qrcode.Encode(content, qrcode.Medium, size)
    if err != nil {
        return "", err
    }
    return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
