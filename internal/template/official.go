package template

import "github.com/sakif/codesplit/internal/model"

// Official is the set of templates shown on the dashboard's "start from a
// template" rail. Order matters: it is the display order.
var Official = []model.Template{
	{
		ID:          "landing-page",
		Title:       "Landing Page",
		Description: "A modern, responsive landing page template",
		Tags:        []string{"HTML", "CSS", "Responsive"},
		HTML: `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Modern Landing Page</title>
</head>
<body>
    <header class="header">
        <nav class="nav">
            <div class="logo">Brand</div>
            <ul class="nav-links">
                <li><a href="#features">Features</a></li>
                <li><a href="#about">About</a></li>
                <li><a href="#contact">Contact</a></li>
            </ul>
        </nav>
    </header>

    <main>
        <section class="hero">
            <h1>Welcome to the Future</h1>
            <p>Build something amazing with our modern platform. Simple, fast, and beautiful.</p>
            <button class="cta-button">Get Started</button>
        </section>

        <section id="features" class="features">
            <h2>Features</h2>
            <div class="feature-grid">
                <div class="feature-card">
                    <div class="feature-icon">🚀</div>
                    <h3>Fast Performance</h3>
                    <p>Lightning-fast load times and smooth interactions.</p>
                </div>
                <div class="feature-card">
                    <div class="feature-icon">🎨</div>
                    <h3>Beautiful Design</h3>
                    <p>Modern aesthetics that capture attention.</p>
                </div>
                <div class="feature-card">
                    <div class="feature-icon">📱</div>
                    <h3>Fully Responsive</h3>
                    <p>Looks great on all devices and screen sizes.</p>
                </div>
            </div>
        </section>
    </main>

    <footer class="footer">
        <p>&copy; 2024 Brand. All rights reserved.</p>
    </footer>
</body>
</html>`,
		CSS: `* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}

body {
    font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
    line-height: 1.6;
    color: #333;
}

.header {
    background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
    padding: 1rem 2rem;
    position: fixed;
    width: 100%;
    top: 0;
    z-index: 100;
}

.nav {
    display: flex;
    justify-content: space-between;
    align-items: center;
    max-width: 1200px;
    margin: 0 auto;
}

.logo {
    font-size: 1.5rem;
    font-weight: bold;
    color: white;
}

.nav-links {
    display: flex;
    list-style: none;
    gap: 2rem;
}

.nav-links a {
    color: white;
    text-decoration: none;
    transition: opacity 0.3s;
}

.nav-links a:hover {
    opacity: 0.8;
}

.hero {
    background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
    color: white;
    text-align: center;
    padding: 10rem 2rem 6rem;
}

.hero h1 {
    font-size: 3rem;
    margin-bottom: 1rem;
}

.hero p {
    font-size: 1.25rem;
    max-width: 600px;
    margin: 0 auto 2rem;
    opacity: 0.9;
}

.cta-button {
    background: white;
    color: #667eea;
    border: none;
    padding: 1rem 2.5rem;
    font-size: 1.1rem;
    border-radius: 50px;
    cursor: pointer;
    font-weight: bold;
    transition: transform 0.2s;
}

.cta-button:hover {
    transform: translateY(-2px);
}

.features {
    padding: 5rem 2rem;
    max-width: 1200px;
    margin: 0 auto;
    text-align: center;
}

.features h2 {
    font-size: 2rem;
    margin-bottom: 3rem;
}

.feature-grid {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
    gap: 2rem;
}

.feature-card {
    padding: 2rem;
    border-radius: 12px;
    box-shadow: 0 4px 20px rgba(0, 0, 0, 0.08);
    transition: transform 0.3s;
}

.feature-card:hover {
    transform: translateY(-5px);
}

.feature-icon {
    font-size: 2.5rem;
    margin-bottom: 1rem;
}

.footer {
    background: #2d3748;
    color: white;
    text-align: center;
    padding: 2rem;
}`,
		JS: `// Smooth scrolling for navigation links
document.querySelectorAll('a[href^="#"]').forEach(anchor => {
    anchor.addEventListener('click', function (e) {
        e.preventDefault();
        const target = document.querySelector(this.getAttribute('href'));
        if (target) {
            target.scrollIntoView({ behavior: 'smooth', block: 'start' });
        }
    });
});

document.querySelector('.cta-button').addEventListener('click', () => {
    alert('Welcome aboard! 🚀');
});`,
	},
	{
		ID:          "dashboard-ui",
		Title:       "Dashboard UI",
		Description: "A clean admin dashboard layout with sidebar and stat cards",
		Tags:        []string{"Dashboard", "CSS Grid", "UI"},
		HTML: `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Dashboard</title>
</head>
<body>
    <div class="layout">
        <aside class="sidebar">
            <div class="brand">Acme</div>
            <nav>
                <a href="#" class="active">Overview</a>
                <a href="#">Reports</a>
                <a href="#">Customers</a>
                <a href="#">Settings</a>
            </nav>
        </aside>
        <main class="content">
            <h1>Overview</h1>
            <div class="stats">
                <div class="stat-card">
                    <span class="stat-label">Revenue</span>
                    <span class="stat-value" id="revenue">$0</span>
                </div>
                <div class="stat-card">
                    <span class="stat-label">Users</span>
                    <span class="stat-value" id="users">0</span>
                </div>
                <div class="stat-card">
                    <span class="stat-label">Orders</span>
                    <span class="stat-value" id="orders">0</span>
                </div>
            </div>
        </main>
    </div>
</body>
</html>`,
		CSS: `* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}

body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
    background: #f1f5f9;
}

.layout {
    display: grid;
    grid-template-columns: 220px 1fr;
    min-height: 100vh;
}

.sidebar {
    background: #0f172a;
    color: #e2e8f0;
    padding: 1.5rem 1rem;
}

.brand {
    font-size: 1.25rem;
    font-weight: 700;
    margin-bottom: 2rem;
}

.sidebar nav a {
    display: block;
    color: #94a3b8;
    text-decoration: none;
    padding: 0.6rem 0.75rem;
    border-radius: 8px;
    margin-bottom: 0.25rem;
}

.sidebar nav a.active,
.sidebar nav a:hover {
    background: #1e293b;
    color: white;
}

.content {
    padding: 2rem;
}

.stats {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
    gap: 1.5rem;
    margin-top: 1.5rem;
}

.stat-card {
    background: white;
    border-radius: 12px;
    padding: 1.5rem;
    display: flex;
    flex-direction: column;
    gap: 0.5rem;
    box-shadow: 0 1px 3px rgba(0, 0, 0, 0.08);
}

.stat-label {
    color: #64748b;
    font-size: 0.85rem;
    text-transform: uppercase;
    letter-spacing: 0.05em;
}

.stat-value {
    font-size: 1.75rem;
    font-weight: 700;
    color: #0f172a;
}`,
		JS: `// Animate the stat counters up from zero
function countUp(id, target, prefix = '') {
    const el = document.getElementById(id);
    const duration = 1200;
    const start = performance.now();

    function tick(now) {
        const progress = Math.min((now - start) / duration, 1);
        const value = Math.floor(progress * target);
        el.textContent = prefix + value.toLocaleString();
        if (progress < 1) requestAnimationFrame(tick);
    }
    requestAnimationFrame(tick);
}

countUp('revenue', 48250, '$');
countUp('users', 1823);
countUp('orders', 642);`,
	},
	{
		ID:          "portfolio",
		Title:       "Portfolio",
		Description: "A minimal personal portfolio with project grid",
		Tags:        []string{"Portfolio", "Minimal", "Personal"},
		HTML: `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Portfolio</title>
</head>
<body>
    <section class="intro">
        <h1>Hi, I'm Alex.</h1>
        <p>I design and build things for the web.</p>
    </section>

    <section class="projects">
        <h2>Selected Work</h2>
        <div class="project-grid" id="grid"></div>
    </section>

    <footer>
        <p>Let's talk — <a href="mailto:hello@example.com">hello@example.com</a></p>
    </footer>
</body>
</html>`,
		CSS: `* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}

body {
    font-family: Georgia, 'Times New Roman', serif;
    color: #1a1a1a;
    max-width: 760px;
    margin: 0 auto;
    padding: 4rem 1.5rem;
}

.intro h1 {
    font-size: 2.5rem;
    margin-bottom: 0.5rem;
}

.intro p {
    color: #555;
    font-size: 1.15rem;
}

.projects {
    margin-top: 4rem;
}

.projects h2 {
    font-size: 1.25rem;
    text-transform: uppercase;
    letter-spacing: 0.1em;
    color: #888;
    margin-bottom: 1.5rem;
}

.project-grid {
    display: grid;
    grid-template-columns: repeat(auto-fill, minmax(220px, 1fr));
    gap: 1.25rem;
}

.project-card {
    border: 1px solid #e5e5e5;
    border-radius: 8px;
    padding: 1.25rem;
    transition: border-color 0.2s;
}

.project-card:hover {
    border-color: #1a1a1a;
}

.project-card h3 {
    margin-bottom: 0.4rem;
}

.project-card p {
    color: #666;
    font-size: 0.92rem;
}

footer {
    margin-top: 5rem;
    color: #888;
}

footer a {
    color: inherit;
}`,
		JS: `const work = [
    { title: 'Weather Widget', blurb: 'Tiny forecast card with animated icons.' },
    { title: 'Recipe Box', blurb: 'Searchable recipe collection, all client-side.' },
    { title: 'Pixel Painter', blurb: 'A canvas drawing toy with palettes.' },
    { title: 'Type Trainer', blurb: 'Practice typing with live WPM stats.' },
];

const grid = document.getElementById('grid');
for (const item of work) {
    const card = document.createElement('div');
    card.className = 'project-card';
    card.innerHTML = '<h3>' + item.title + '</h3><p>' + item.blurb + '</p>';
    grid.appendChild(card);
}`,
	},
	{
		ID:          "blog-layout",
		Title:       "Blog Layout",
		Description: "A readable article layout with a sticky table of contents",
		Tags:        []string{"Blog", "Typography", "Layout"},
		HTML: `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Blog</title>
</head>
<body>
    <article>
        <header class="post-header">
            <h1>Designing with Constraints</h1>
            <p class="meta">March 12 · 6 min read</p>
        </header>

        <nav class="toc">
            <strong>Contents</strong>
            <a href="#one">Why constraints help</a>
            <a href="#two">Picking a palette</a>
            <a href="#three">Shipping it</a>
        </nav>

        <section id="one">
            <h2>Why constraints help</h2>
            <p>Blank pages are paralyzing. A tight brief, a two-color palette,
            a single typeface — constraints turn an infinite decision space
            into a tractable one.</p>
        </section>

        <section id="two">
            <h2>Picking a palette</h2>
            <p>Start from one hue you love and derive the rest: a darker shade
            for text, a lighter tint for surfaces, one accent for actions.</p>
        </section>

        <section id="three">
            <h2>Shipping it</h2>
            <p>Done is a feature. Publish the imperfect version and iterate in
            public.</p>
        </section>
    </article>
</body>
</html>`,
		CSS: `* {
    margin: 0;
    padding: 0;
    box-sizing: border-box;
}

body {
    font-family: 'Iowan Old Style', 'Palatino Linotype', serif;
    line-height: 1.7;
    color: #222;
    background: #fffdf8;
}

article {
    max-width: 680px;
    margin: 0 auto;
    padding: 4rem 1.5rem;
}

.post-header h1 {
    font-size: 2.25rem;
    line-height: 1.2;
}

.meta {
    color: #999;
    margin-top: 0.5rem;
    font-size: 0.9rem;
}

.toc {
    border-left: 3px solid #e0c458;
    padding: 0.75rem 1rem;
    margin: 2rem 0;
    display: flex;
    flex-direction: column;
    gap: 0.3rem;
    background: #fdf6e3;
}

.toc a {
    color: #7a6520;
    text-decoration: none;
}

.toc a:hover {
    text-decoration: underline;
}

section {
    margin-top: 2.5rem;
}

section h2 {
    font-size: 1.4rem;
    margin-bottom: 0.75rem;
}`,
		JS: `// Highlight the section currently in view
const links = document.querySelectorAll('.toc a');
const sections = document.querySelectorAll('section');

const observer = new IntersectionObserver((entries) => {
    for (const entry of entries) {
        if (!entry.isIntersecting) continue;
        links.forEach(l => {
            l.style.fontWeight =
                l.getAttribute('href') === '#' + entry.target.id ? 'bold' : 'normal';
        });
    }
}, { rootMargin: '-40% 0px -50% 0px' });

sections.forEach(s => observer.observe(s));`,
	},
}
