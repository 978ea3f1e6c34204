package services

const signinEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #1f2937; background-color: #f0fdf4; margin: 0; padding: 20px; }
.container { padding: 20px; max-width: 600px; margin: 20px auto; background-color: #ffffff; border: 1px solid #bbf7d0; border-radius: 8px; }
.header { font-size: 24px; font-weight: bold; color: #15803d; margin-bottom: 15px; }
.content { padding: 30px; text-align: center; }
.button { font-size: 18px; font-weight: bold; color: #ffffff; background-color: #15803d; padding: 12px 28px; border-radius: 5px; display: inline-block; margin: 20px 0; text-decoration: none; }
.key { font-size: 14px; color: #6b7280; word-break: break-all; }
.footer { margin-top: 20px; font-size: 12px; color: #6b7280; text-align: center; }
p { margin-bottom: 1em; }
</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      <p>%s</p>
      <a class="button" href="%s">Sign in</a>
      <p class="key">Or paste this key into the app: %s</p>
    </div>
    <div class="footer">
      © %d Ledger. All rights reserved.
    </div>
  </div>
</body>
</html>`
