package template

// StarterHTML is the default document a fresh editor session starts with.
// The migration flow compares guest work against it (trimmed) to decide
// whether there is anything worth claiming into the cloud — untouched
// starter content is not migrated.
const StarterHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>My Page</title>
</head>
<body>
    <div class="card">
        <h1>Hello, World! 👋</h1>
        <p>Start editing to see your changes live!</p>
        <button onclick="handleClick()">Click Me</button>
    </div>
</body>
</html>`
